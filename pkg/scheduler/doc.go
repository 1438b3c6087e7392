// Package scheduler decides when visibility watcher setup runs.
//
// Wiring up a watcher is never urgent, so it can wait for the host to go
// idle instead of competing with frame work. Every strategy satisfies the
// one-method [Scheduler] interface, which lets tests substitute [Immediate]
// for deterministic behavior:
//
//	queue := scheduler.NewIdleQueue(nil)
//	sched := scheduler.NewIdle(queue, 100*time.Millisecond)
//	sched.Schedule(setup) // runs on queue.RunIdle or after 100ms
//
// Schedulers are only for setup. Teardown always runs synchronously.
package scheduler
