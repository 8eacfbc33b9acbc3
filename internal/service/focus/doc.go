// Package focus implements the focus list provider: for one user it fetches
// open tasks and their live successor counts, scores and classifies each task,
// and returns the ranked Focus (startable) and Waiting (blocked) lists.
//
// The service is stateless and never writes. Every call recomputes against the
// injected clock.
package focus
