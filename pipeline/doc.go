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


// Package pipeline assembles canonical documents from raw CMS records.
//
// One Transform call processes one batch to completion: records are
// extracted and mapped concurrently on a worker pool (results are
// index-addressed, so output order always matches input order), then the
// extracted texts are embedded in a single provider batch with strict
// 1:1 positional correspondence between texts and vectors.
//
// Records that already conform to the canonical {text, metadata,
// embedding} shape pass through unchanged, making reprocessing of the
// pipeline's own output a no-op. Per-record field problems are recovered
// with warnings; only an embedding provider failure aborts the run.
package pipeline
