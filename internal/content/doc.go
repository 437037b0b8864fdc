// Package content defines the producer contract used by the feed synchronizer
// and the pieces shared by every producer: the reason classifier, the search
// query decoder and the generative producer that turns a text completer's
// JSON reply into feed content.
//
// The deterministic table producer lives in content/tables. Completers for
// the gemini CLI and the OpenRouter API live under services/.
package content
