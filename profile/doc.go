// Package profile provides optional runtime profiling for fjord, built on
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof -o fjord .
//
// Without the tag [Modes] is empty and [Config.Start] returns a no-op, so
// callers never need build tags of their own.
//
//	p := profile.Make(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/fjord-pprof"),
//	).Start()
//	defer p.Stop()
//
// # Modes
//
//   - allocs: memory allocations
//   - block: blocking on synchronization primitives
//   - clock: wall-clock time
//   - cpu: CPU time
//   - goroutine: goroutine stacks
//   - heap: live heap
//   - mem: memory (default rate)
//   - mutex: mutex contention
//   - thread: thread creation
//   - trace: execution trace
//
// Profiles are named after their mode, such as cpu.pprof, and are read
// with go tool pprof:
//
//	go tool pprof -http=: ./fjord /tmp/fjord-pprof/cpu.pprof
package profile
