// Package openai is the chat-completions client behind the chat node.
//
// [New] reads OPENAI_API_KEY and OPENAI_API_BASE_URL from the environment;
// both can be overridden with the With* builders. Requests go to
// {base}/chat/completions with a single user message.
package openai
