package asm

// offsets tracks the stack slot assigned to each pseudo-register name
// within a single function: first encounter wins, slots are dense and
// grow downward in multiples of 4 bytes.
type offsets struct {
	slot map[string]int
	cur  int
}

func newOffsets() *offsets {
	return &offsets{slot: map[string]int{}}
}

func (o *offsets) resolve(name string) int {
	if off, ok := o.slot[name]; ok {
		return off
	}
	o.cur -= 4
	o.slot[name] = o.cur
	return o.cur
}

// maxOffset returns the most negative offset handed out (0 if none);
// its magnitude is the total stack space this function's temporaries
// need.
func (o *offsets) maxOffset() int {
	return o.cur
}

// ReplacePseudos is the H pass: it replaces every Pseudo operand in a
// function with a Stack operand, assigning offsets in first-encounter
// order, and returns the total stack space that function now needs.
func ReplacePseudos(fn *Function) int {
	o := newOffsets()

	for i := range fn.Instructions {
		instr := &fn.Instructions[i]
		replaceOperand(&instr.Src, o)
		replaceOperand(&instr.Dst, o)
		replaceOperand(&instr.Operand, o)
	}

	return -o.maxOffset()
}

func replaceOperand(op *Operand, o *offsets) {
	if op.Kind != OpPseudo {
		return
	}
	*op = Stack(o.resolve(op.Name))
}
