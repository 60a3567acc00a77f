package sched

import "github.com/cilium/ebpf/asm"

// switchCounterInsns assembles a tracepoint program that bumps slot 0 of the per-CPU
// array referenced by mapFD. Each CPU owns its own copy of the slot, so a plain
// load/add/store is race free.
func switchCounterInsns(mapFD int) asm.Instructions {
	return asm.Instructions{
		// key = 0, stored on the stack
		asm.StoreImm(asm.RFP, -4, 0, asm.Word),
		asm.LoadMapPtr(asm.R1, mapFD),
		asm.Mov.Reg(asm.R2, asm.RFP),
		asm.Add.Imm(asm.R2, -4),
		asm.FnMapLookupElem.Call(),
		asm.JEq.Imm(asm.R0, 0, "exit"),
		asm.LoadMem(asm.R1, asm.R0, 0, asm.DWord),
		asm.Add.Imm(asm.R1, 1),
		asm.StoreMem(asm.R0, 0, asm.R1, asm.DWord),
		asm.Mov.Imm(asm.R0, 0).WithSymbol("exit"),
		asm.Return(),
	}
}
