// Package llm buckets purchases into spend categories. A price rule handles
// expensive items; everything else goes to an external language model
// (OpenAI or Anthropic) behind an LRU+TTL cache, a rate limiter and retries.
package llm
