package common

const (
	SrcFileExtension  = ".js"
	HTMLFileExtension = ".html"
	ZipFileExtension  = ".zip"
	OutFileExtension  = ".sb3"

	ProjectFileName = "project.json"
	ConfigFileName  = "scratchc.toml"

	ScratchcVersion = "0.1.0"
)

// Agent is the fixed identifier stamped into the metadata of every emitted
// project envelope
const Agent = "scratchc/" + ScratchcVersion
