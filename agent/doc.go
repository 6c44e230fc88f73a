// Package agent assembles the three agents of the mesh on top of the shared
// executor state machine: the movie agent and the quotes agent run a
// model-backed step with registered lookup tools, while the coordinator
// classifies requests and fans them out to the other two over the streaming
// agent client.
//
// Each agent contributes only its back-end step, its advisory working
// message and its identity card; the lifecycle semantics live entirely in
// the executor package.
package agent
