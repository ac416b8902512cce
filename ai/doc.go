// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai defines the embedding provider abstraction used by the
// document pipeline.
//
// The provider set is closed: hosted OpenAI embeddings (ai/openai), a
// local model served over an Ollama-compatible endpoint (ai/local), and
// an explicit skip variant that emits zero vectors without contacting
// any backend (ai/skip). Provider selection is a single configuration
// choice for a whole run; documents are never embedded by mixed
// providers within one batch.
//
// Public constructors in the implementation packages return the
// ai.Embedder interface to keep callers decoupled from the concrete
// clients. The ai/mock package returns concrete types so tests can
// inject behavior and assert call counts.
//
// Embedding calls carry no retry or backoff: a provider failure is fatal
// for the run and surfaces to the caller unchanged.
package ai
