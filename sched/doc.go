// Package sched schedules deferred and periodic callbacks on the host
// toolkit's timer queue and ties every job to an owning widget. When the
// owner is destroyed the scheduler cancels its jobs automatically, so
// application code never has to pair an After with a cleanup hook.
//
// Four primitives cover the usual cases: After for one-shot delays, Idle
// for the next quiet moment of the loop, At for wall-clock deadlines, and
// Every for periodic work. Periodic jobs compensate for callback drift:
// the next delay is the period minus the time the callback took, floored
// at zero, so long ticks compress the following gap instead of shifting
// the whole cadence.
//
// Jobs run on the loop thread and cancellation is cooperative: Cancel
// prevents future firings but never interrupts a callback already running.
package sched
