// Package transport is the root of a small toolkit for the balanced
// transportation problem: ship goods from facilities with fixed capacities
// to warehouses with fixed demands at minimum total cost.
//
// What is in the box?
//
//	• problem/     – validated problem input (facilities, warehouses, costs)
//	• lpform/      – the standard-form equality LP built from a problem
//	• transport/   – transportation simplex (MODI): NW corner, least cost
//	                 and Vogel starts, degenerate-safe pivoting
//	• report/      – text, table, JSON and YAML renderings of a result
//	• problemfile/ – YAML / TOML / JSON problem files
//	• batch/       – many independent problems solved in parallel
//	• metrics/     – Prometheus collectors for solver outcomes
//	• matrix/      – the dense float matrix behind costs and plans
//	• cmd/transport – the command line front end
//
// Quick example:
//
//	F1(20) ──4── W1(25)        plan: F1→W1 20
//	   ╲  6                          F2→W1  5
//	F2(30) ──2── W2(25)              F2→W2 25
//	   (F2→W1 costs 8)         cost: 170
//
// Library use:
//
//	spec, err := problem.New(facilities, warehouses, costs)
//	out := transport.Solve(ctx, spec, transport.DefaultOptions())
//	report.Write(os.Stdout, spec, out, report.Text)
//
// Command line:
//
//	go install github.com/katalvlaran/transport/cmd/transport@latest
//	transport solve -f problem.yaml --init vogel --format table
package transport
