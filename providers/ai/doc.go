// Package ai defines the provider-neutral chat types used by the chat node:
// [ChatRequest], [Message], [ChatResponse], and the [Provider] interface that
// concrete clients such as providers/ai/openai implement.
package ai
