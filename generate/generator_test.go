package generate

import (
	"testing"

	"scratchc/sb3"
	"scratchc/syntax"
	"scratchc/walk"
)

func compile(t *testing.T, src string) (sb3.Store, *walk.SymbolTable) {
	t.Helper()

	prg, err := syntax.Parse("test.js", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	table := walk.Analyze(prg)
	return Generate(prg, table), table
}

func blocksOf(store sb3.Store, opcode string) []*sb3.Block {
	var out []*sb3.Block
	for _, b := range store {
		if b.Opcode == opcode {
			out = append(out, b)
		}
	}

	return out
}

func oneBlock(t *testing.T, store sb3.Store, opcode string) (string, *sb3.Block) {
	t.Helper()

	var id string
	var found *sb3.Block
	for bid, b := range store {
		if b.Opcode == opcode {
			if found != nil {
				t.Fatalf("store holds more than one %s", opcode)
			}

			id, found = bid, b
		}
	}

	if found == nil {
		t.Fatalf("store holds no %s", opcode)
	}

	return id, found
}

// refOf extracts the block id referenced by a [2, id] or [3, id, shadow]
// input
func refOf(t *testing.T, in sb3.Input) string {
	t.Helper()

	id, ok := in.RefersToBlock()
	if !ok {
		t.Fatalf("input %v references no block", in)
	}

	return id
}

// checkStore asserts the graph invariants every successful lowering must
// satisfy
func checkStore(t *testing.T, store sb3.Store) {
	t.Helper()

	roots := 0
	for id, b := range store {
		if b.TopLevel {
			if b.Parent != nil {
				t.Errorf("top-level block %s has a parent", id)
			}

			if b.Opcode == sb3.OpEventWhenFlagClicked {
				roots++
			} else if b.Opcode != sb3.OpProceduresDefinition {
				t.Errorf("unexpected top-level opcode %s on %s", b.Opcode, id)
			}
		} else if b.Parent == nil {
			t.Errorf("non-top-level block %s (%s) has no parent", id, b.Opcode)
		} else if !store.Contains(*b.Parent) {
			t.Errorf("block %s parent %s does not exist", id, *b.Parent)
		}

		if b.Next != nil {
			next, ok := store[*b.Next]
			if !ok {
				t.Errorf("block %s next %s does not exist", id, *b.Next)
				continue
			}

			if next.Parent == nil || *next.Parent != id {
				t.Errorf("block %s next %s does not name it as parent", id, *b.Next)
			}
		}

		for slot, in := range b.Inputs {
			if ref, ok := in.RefersToBlock(); ok && !store.Contains(ref) {
				t.Errorf("block %s input %s references missing block %s", id, slot, ref)
			}
		}
	}

	if roots != 1 {
		t.Errorf("event root count = %d, want 1", roots)
	}
}

const fullProgram = `let x = 10;
let arr = [1, 2, 3];
let obj = { a: 1, b: 2 };
const add = (a, b) => a + b;
function fact(n) {
  if (n <= 1) return 1;
  return n * fact(n - 1);
}
let total = add(x, 5);
let r = fact(5);
obj.a = total + obj.b;
arr.push(4);
arr[1] = arr[0] + arr.length;
arr.pop();
if (x == 10) { x = x - 1; }
while (x < 5) { x = x + 1; }
for (let i = 0; i < 10; i++) { total = total + i; }
for (j = 0; j != 4; j = j + 2) { total = total + j; }
scratch_say("hi");
`

func TestStoreInvariants(t *testing.T) {
	store, table := compile(t, fullProgram)
	checkStore(t, store)

	// every VARIABLE field names a materialized variable or flattened name
	for id, b := range store {
		if field, ok := b.Fields["VARIABLE"]; ok {
			name := field[0].(string)
			if !table.IsVariable(name) {
				t.Errorf("block %s sets unmaterialized variable %s", id, name)
			}
		}

		if field, ok := b.Fields["LIST"]; ok {
			if name := field[0].(string); !table.IsList(name) {
				t.Errorf("block %s references unmaterialized list %s", id, name)
			}
		}
	}

	// no function name or parameter survives as a variable
	for _, name := range []string{"add", "fact", "a", "b", "n"} {
		if table.IsVariable(name) {
			t.Errorf("%s materialized as a variable", name)
		}
	}

	if !table.IsVariable("fact_result") {
		t.Error("recursive call did not allocate its result variable")
	}
}

func TestProcedureCallMatchesDefinition(t *testing.T) {
	store, _ := compile(t, fullProgram)

	_, def := oneBlock(t, store, sb3.OpProceduresDefinition)
	_, call := oneBlock(t, store, sb3.OpProceduresCall)

	if def.Mutation == nil || call.Mutation == nil {
		t.Fatal("procedure blocks carry no mutation")
	}
	if def.Mutation.ProcCode != "fact" || call.Mutation.ProcCode != "fact" {
		t.Errorf("proccodes = %q / %q, want fact", def.Mutation.ProcCode, call.Mutation.ProcCode)
	}
	if def.Mutation.ArgumentIDs != call.Mutation.ArgumentIDs {
		t.Errorf("argumentids mismatch: %s vs %s", def.Mutation.ArgumentIDs, call.Mutation.ArgumentIDs)
	}
	if def.Mutation.ArgumentIDs != `["n"]` {
		t.Errorf("argumentids = %s, want [\"n\"]", def.Mutation.ArgumentIDs)
	}
	if def.Mutation.Warp != "false" {
		t.Errorf("warp = %q, want false", def.Mutation.Warp)
	}
}

func TestEmptyProgram(t *testing.T) {
	store, _ := compile(t, "")

	if len(store) != 2 {
		t.Fatalf("block count = %d, want 2 (event root and stop)", len(store))
	}

	rootID, root := oneBlock(t, store, sb3.OpEventWhenFlagClicked)
	_, stop := oneBlock(t, store, sb3.OpControlStop)

	if !root.TopLevel || root.Parent != nil {
		t.Error("event root not a detached top-level block")
	}
	if root.Next == nil || *root.Next == "" {
		t.Fatal("event root chains to nothing")
	}
	if stop.Parent == nil || *stop.Parent != rootID {
		t.Error("stop block not parented under the event root")
	}
	if field := stop.Fields["STOP_OPTION"]; field[0] != "all" || field[1] != nil {
		t.Errorf("STOP_OPTION = %v, want [all, nil]", field)
	}
	if stop.Mutation == nil || stop.Mutation.HasNext != "false" {
		t.Error("stop block mutation missing hasnext=false")
	}
}

func TestSetVariableScenario(t *testing.T) {
	store, table := compile(t, "let x = 10;")

	_, set := oneBlock(t, store, sb3.OpDataSetVariableTo)
	if got := set.Fields["VARIABLE"]; got[0] != "x" || got[1] != "x" {
		t.Errorf("VARIABLE = %v, want [x x]", got)
	}

	want := sb3.NumberShadow("10")
	if !inputEqual(set.Inputs["VALUE"], want) {
		t.Errorf("VALUE = %v, want %v", set.Inputs["VALUE"], want)
	}

	if !table.IsVariable("x") {
		t.Error("x not materialized")
	}
}

func TestWhileLoopScenario(t *testing.T) {
	store, _ := compile(t, "let counter = 0;\nwhile (counter < 5) { counter = counter + 1; }")

	repeatID, repeat := oneBlock(t, store, sb3.OpControlRepeatUntil)

	// the negated `<` lowers to its dual `>=`: an operator_lt wrapped in
	// operator_not
	notID := refOf(t, repeat.Inputs["CONDITION"])
	not := store[notID]
	if not.Opcode != sb3.OpOperatorNot {
		t.Fatalf("condition opcode = %s, want operator_not", not.Opcode)
	}

	ltID := refOf(t, not.Inputs["OPERAND"])
	lt := store[ltID]
	if lt.Opcode != sb3.OpOperatorLt {
		t.Fatalf("wrapped opcode = %s, want operator_lt", lt.Opcode)
	}

	wantLeft := sb3.VariableRef("counter")
	if !inputEqual(lt.Inputs["OPERAND1"], wantLeft) {
		t.Errorf("OPERAND1 = %v, want %v", lt.Inputs["OPERAND1"], wantLeft)
	}
	if !inputEqual(lt.Inputs["OPERAND2"], sb3.TextShadow("5")) {
		t.Errorf("OPERAND2 = %v, want text shadow 5", lt.Inputs["OPERAND2"])
	}

	// the substack starts with the counter assignment whose value is an
	// operator_add reporter
	bodyID := refOf(t, repeat.Inputs["SUBSTACK"])
	body := store[bodyID]
	if body.Opcode != sb3.OpDataSetVariableTo {
		t.Fatalf("substack head opcode = %s, want data_setvariableto", body.Opcode)
	}
	if body.Parent == nil || *body.Parent != repeatID {
		t.Error("substack head not parented under the loop")
	}

	addID := refOf(t, body.Inputs["VALUE"])
	if store[addID].Opcode != sb3.OpOperatorAdd {
		t.Errorf("assignment value opcode = %s, want operator_add", store[addID].Opcode)
	}
}

func TestInlineCallScenario(t *testing.T) {
	store, table := compile(t, "const add = (a, b) => a + b;\nconst total = add(40, 35);")

	if table.IsVariable("add") {
		t.Error("inlined function materialized as a variable")
	}

	_, set := oneBlock(t, store, sb3.OpDataSetVariableTo)
	if set.Fields["VARIABLE"][0] != "total" {
		t.Errorf("VARIABLE = %v, want total", set.Fields["VARIABLE"])
	}

	addID := refOf(t, set.Inputs["VALUE"])
	add := store[addID]
	if add.Opcode != sb3.OpOperatorAdd {
		t.Fatalf("value opcode = %s, want operator_add", add.Opcode)
	}
	if !inputEqual(add.Inputs["NUM1"], sb3.NumberShadow("40")) {
		t.Errorf("NUM1 = %v, want number shadow 40", add.Inputs["NUM1"])
	}
	if !inputEqual(add.Inputs["NUM2"], sb3.NumberShadow("35")) {
		t.Errorf("NUM2 = %v, want number shadow 35", add.Inputs["NUM2"])
	}
}

func TestListScenario(t *testing.T) {
	store, table := compile(t, "let arr = [1, 2, 3];\narr.push(4);\nlet y = arr[0];")

	if got := table.ListInit("arr"); len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("arr initial values = %v, want [1 2 3]", got)
	}

	_, push := oneBlock(t, store, sb3.OpDataAddToList)
	if !inputEqual(push.Inputs["ITEM"], sb3.NumberShadow("4")) {
		t.Errorf("ITEM = %v, want number shadow 4", push.Inputs["ITEM"])
	}
	if push.Fields["LIST"][0] != "arr" {
		t.Errorf("LIST = %v, want arr", push.Fields["LIST"])
	}

	itemID, item := oneBlock(t, store, sb3.OpDataItemOfList)
	if !inputEqual(item.Inputs["INDEX"], sb3.NumberShadow("0")) {
		t.Errorf("INDEX = %v, want the verbatim 0 (no base adjustment)", item.Inputs["INDEX"])
	}

	for _, set := range blocksOf(store, sb3.OpDataSetVariableTo) {
		if set.Fields["VARIABLE"][0] == "y" {
			if got := refOf(t, set.Inputs["VALUE"]); got != itemID {
				t.Errorf("y value references %s, want the item reporter %s", got, itemID)
			}
		}
	}
}

func TestListPop(t *testing.T) {
	store, _ := compile(t, "let arr = [1];\narr.pop();")

	_, del := oneBlock(t, store, sb3.OpDataDeleteOfList)
	lenID := refOf(t, del.Inputs["INDEX"])
	length := store[lenID]
	if length.Opcode != sb3.OpDataLengthOfList {
		t.Fatalf("INDEX opcode = %s, want data_lengthoflist", length.Opcode)
	}
	if length.Fields["LIST"][0] != "arr" {
		t.Errorf("length LIST = %v, want arr", length.Fields["LIST"])
	}
}

func TestSimpleForNormalization(t *testing.T) {
	store, _ := compile(t, "for (let i = 0; i < 10; i++) { k = k + 1; }")
	checkStore(t, store)

	repeatID, repeat := oneBlock(t, store, sb3.OpControlRepeat)

	// TIMES is the unclamped span end - start
	subID := refOf(t, repeat.Inputs["TIMES"])
	sub := store[subID]
	if sub.Opcode != sb3.OpOperatorSubtract {
		t.Fatalf("TIMES opcode = %s, want operator_subtract", sub.Opcode)
	}
	if !inputEqual(sub.Inputs["NUM1"], sb3.NumberShadow("10")) {
		t.Errorf("NUM1 = %v, want number shadow 10", sub.Inputs["NUM1"])
	}
	if !inputEqual(sub.Inputs["NUM2"], sb3.NumberShadow("0")) {
		t.Errorf("NUM2 = %v, want number shadow 0", sub.Inputs["NUM2"])
	}

	// the counter initialization is the loop's entry and chains into the
	// repeat
	var init *sb3.Block
	for _, b := range blocksOf(store, sb3.OpDataSetVariableTo) {
		if b.Fields["VARIABLE"][0] == "i" && b.Next != nil && *b.Next == repeatID {
			init = b
		}
	}
	if init == nil {
		t.Fatal("no i := start block chains into the repeat")
	}

	// the body's last statement is the synthesized i := i + 1
	bodyID := refOf(t, repeat.Inputs["SUBSTACK"])
	last := bodyID
	for store[last].Next != nil {
		last = *store[last].Next
	}
	if store[last].Fields["VARIABLE"][0] != "i" {
		t.Errorf("body tail sets %v, want the counter increment", store[last].Fields["VARIABLE"])
	}
}

func TestSimpleForInclusiveBound(t *testing.T) {
	store, _ := compile(t, "for (let i = 1; i <= 3; i += 1) { k = k + 1; }")

	_, repeat := oneBlock(t, store, sb3.OpControlRepeat)
	addID := refOf(t, repeat.Inputs["TIMES"])
	add := store[addID]
	if add.Opcode != sb3.OpOperatorAdd {
		t.Fatalf("TIMES opcode = %s, want operator_add (span + 1)", add.Opcode)
	}
	if !inputEqual(add.Inputs["NUM2"], sb3.NumberShadow("1")) {
		t.Errorf("NUM2 = %v, want number shadow 1", add.Inputs["NUM2"])
	}

	subID := refOf(t, add.Inputs["NUM1"])
	if store[subID].Opcode != sb3.OpOperatorSubtract {
		t.Errorf("span opcode = %s, want operator_subtract", store[subID].Opcode)
	}
}

func TestGeneralForLowering(t *testing.T) {
	store, _ := compile(t, "for (i = 0; i != 4; i = i + 2) { k = k + 1; }")
	checkStore(t, store)

	if len(blocksOf(store, sb3.OpControlRepeat)) != 0 {
		t.Fatal("non-canonical loop normalized into control_repeat")
	}

	repeatID, repeat := oneBlock(t, store, sb3.OpControlRepeatUntil)

	// negated != is a bare equals
	eqID := refOf(t, repeat.Inputs["CONDITION"])
	if store[eqID].Opcode != sb3.OpOperatorEquals {
		t.Fatalf("condition opcode = %s, want operator_equals", store[eqID].Opcode)
	}

	// init chains into the loop; the update lands at the tail of the body
	var init *sb3.Block
	for _, b := range blocksOf(store, sb3.OpDataSetVariableTo) {
		if b.Next != nil && *b.Next == repeatID {
			init = b
		}
	}
	if init == nil {
		t.Fatal("loop init does not chain into the repeat")
	}

	bodyID := refOf(t, repeat.Inputs["SUBSTACK"])
	last := bodyID
	for store[last].Next != nil {
		last = *store[last].Next
	}
	if store[last].Fields["VARIABLE"][0] != "i" {
		t.Errorf("body tail sets %v, want the update assignment", store[last].Fields["VARIABLE"])
	}
}

func TestIfLowering(t *testing.T) {
	store, _ := compile(t, "if (x == 10) { x = 0; }")

	ifID, ifBlock := oneBlock(t, store, sb3.OpControlIf)

	eqID := refOf(t, ifBlock.Inputs["CONDITION"])
	if store[eqID].Opcode != sb3.OpOperatorEquals {
		t.Errorf("condition opcode = %s, want operator_equals", store[eqID].Opcode)
	}

	bodyID := refOf(t, ifBlock.Inputs["SUBSTACK"])
	if store[bodyID].Parent == nil || *store[bodyID].Parent != ifID {
		t.Error("substack head not parented under the if")
	}
}

func TestFlattenedObjectLowering(t *testing.T) {
	store, _ := compile(t, "let obj = { a: 1 };\nobj.a = 5;\nlet n = obj.a;")

	var objSet *sb3.Block
	for _, b := range blocksOf(store, sb3.OpDataSetVariableTo) {
		if b.Fields["VARIABLE"][0] == "obj_a" {
			objSet = b
		}
	}
	if objSet == nil {
		t.Fatal("no assignment to the flattened obj_a")
	}

	for _, b := range blocksOf(store, sb3.OpDataSetVariableTo) {
		if b.Fields["VARIABLE"][0] == "n" {
			want := sb3.VariableWithTextShadow("obj_a")
			if !inputEqual(b.Inputs["VALUE"], want) {
				t.Errorf("n value = %v, want %v", b.Inputs["VALUE"], want)
			}
		}
	}
}
