// Package promptrunner drives a long-lived, prompt-driven subprocess
// (a command-line debugger, an interactive compiler shell) the way a
// human would: send a command, watch the output for the next prompt,
// send the next command.
//
// Declare the tool's commands once on an ActionSet, build a
// Controller over it, invoke actions to queue commands, and call
// Execute to spawn the tool and run the queue.  Execute(true) then
// hands the session to a human operator until the tool exits;
// Execute(false) returns immediately, leaving a live handle so
// actions can be issued over time.
//
// The subprocess' stdout and stderr are drained concurrently during
// every prompt wait, so a tool that fills one pipe before prompting
// on the other cannot deadlock the session.
//
// See example_test.go for usage, and Controller and ActionSet for
// detailed documentation.
package promptrunner
