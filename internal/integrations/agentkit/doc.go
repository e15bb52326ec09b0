// Package agentkit binds the dispatcher to charm.land/fantasy.
//
// It builds provider language models, wraps web search as an agent tool, and
// runs a tool-calling agent once, converting its steps into a transcript.
package agentkit
