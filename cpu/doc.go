// Package cpu implements the q16 emulator core.
//
// The core holds a flat 64KiB memory and the register file, and executes one
// instruction per call to Step. It knows nothing of devices: each Step
// reports the single memory address it read or wrote, if any, so a host can
// implement memory-mapped I/O and tracing around it.
package cpu
