package sb3

// Asset content ids for the two bundled costumes.  The packager copies the
// matching blobs into the archive under `<id>.svg`.
const (
	BackdropAssetID = "cd21514d0531fdffb22204e0ec5ed84a"
	CostumeAssetID  = "bcf454acf82e4504149f7ffe07081dbc"
)

// Project is the 3.0 project envelope: a stage, one sprite and metadata
type Project struct {
	Targets    []interface{} `json:"targets"`
	Monitors   []interface{} `json:"monitors"`
	Extensions []interface{} `json:"extensions"`
	Meta       *Meta         `json:"meta"`
}

// Meta is the project metadata record
type Meta struct {
	SemVer string `json:"semver"`
	VM     string `json:"vm"`
	Agent  string `json:"agent"`
}

// Costume is a costume reference; the referenced asset travels in the
// archive beside project.json
type Costume struct {
	AssetID         string `json:"assetId"`
	Name            string `json:"name"`
	MD5Ext          string `json:"md5ext"`
	DataFormat      string `json:"dataFormat"`
	RotationCenterX int    `json:"rotationCenterX"`
	RotationCenterY int    `json:"rotationCenterY"`
}

// StageTarget is the backdrop-bearing target; it carries no scripts
type StageTarget struct {
	IsStage              bool                     `json:"isStage"`
	Name                 string                   `json:"name"`
	Variables            map[string]interface{}   `json:"variables"`
	Lists                map[string]interface{}   `json:"lists"`
	Broadcasts           map[string]interface{}   `json:"broadcasts"`
	Blocks               Store                    `json:"blocks"`
	Comments             map[string]interface{}   `json:"comments"`
	CurrentCostume       int                      `json:"currentCostume"`
	Costumes             []*Costume               `json:"costumes"`
	Sounds               []interface{}            `json:"sounds"`
	Volume               int                      `json:"volume"`
	LayerOrder           int                      `json:"layerOrder"`
	Tempo                int                      `json:"tempo"`
	VideoTransparency    int                      `json:"videoTransparency"`
	VideoState           string                   `json:"videoState"`
	TextToSpeechLanguage interface{}              `json:"textToSpeechLanguage"`
}

// SpriteTarget is the single sprite carrying the translated scripts
type SpriteTarget struct {
	IsStage        bool                   `json:"isStage"`
	Name           string                 `json:"name"`
	Variables      map[string]interface{} `json:"variables"`
	Lists          map[string]interface{} `json:"lists"`
	Broadcasts     map[string]interface{} `json:"broadcasts"`
	Blocks         Store                  `json:"blocks"`
	Comments       map[string]interface{} `json:"comments"`
	CurrentCostume int                    `json:"currentCostume"`
	Costumes       []*Costume             `json:"costumes"`
	Sounds         []interface{}          `json:"sounds"`
	Volume         int                    `json:"volume"`
	LayerOrder     int                    `json:"layerOrder"`
	Visible        bool                   `json:"visible"`
	X              int                    `json:"x"`
	Y              int                    `json:"y"`
	Size           int                    `json:"size"`
	Direction      int                    `json:"direction"`
	Draggable      bool                   `json:"draggable"`
	RotationStyle  string                 `json:"rotationStyle"`
}

// NewStage creates the fixed stage target with its backdrop reference
func NewStage() *StageTarget {
	return &StageTarget{
		IsStage:    true,
		Name:       "Stage",
		Variables:  map[string]interface{}{},
		Lists:      map[string]interface{}{},
		Broadcasts: map[string]interface{}{},
		Blocks:     Store{},
		Comments:   map[string]interface{}{},
		Costumes: []*Costume{{
			AssetID:         BackdropAssetID,
			Name:            "backdrop1",
			MD5Ext:          BackdropAssetID + ".svg",
			DataFormat:      "svg",
			RotationCenterX: 240,
			RotationCenterY: 180,
		}},
		Sounds:            []interface{}{},
		Volume:            100,
		Tempo:             60,
		VideoTransparency: 50,
		VideoState:        "on",
	}
}

// NewSprite creates a sprite target with the fixed defaults; blocks,
// variables, lists and visibility are filled in by the assembler
func NewSprite(name string) *SpriteTarget {
	return &SpriteTarget{
		Name:       name,
		Variables:  map[string]interface{}{},
		Lists:      map[string]interface{}{},
		Broadcasts: map[string]interface{}{},
		Blocks:     Store{},
		Comments:   map[string]interface{}{},
		Costumes: []*Costume{{
			AssetID:         CostumeAssetID,
			Name:            "costume1",
			MD5Ext:          CostumeAssetID + ".svg",
			DataFormat:      "svg",
			RotationCenterX: 48,
			RotationCenterY: 50,
		}},
		Sounds:        []interface{}{},
		Volume:        100,
		LayerOrder:    1,
		Visible:       true,
		Size:          100,
		Direction:     90,
		RotationStyle: "all around",
	}
}
