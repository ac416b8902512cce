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


// Package normalize turns raw CMS export records into clean text and
// canonical metadata.
//
// Extraction walks a record's structured content blocks, keeps only the
// textual ones, strips HTML markup, and normalizes whitespace. Records
// without structured blocks fall back to a small set of flat body fields.
//
// Mapping resolves each canonical metadata field through an ordered chain
// of candidate source paths, so new CMS dialects are supported by adding
// a path to the chain rather than new control flow. Mapping never fails:
// every field resolves to a type-appropriate default, and the only
// side-channel is a warning list for defaulted timestamps.
//
// Tag stripping is intentionally lossy: markup is removed and text nodes
// are kept, with no attempt to preserve semantic structure. Nested markup
// may lose formatting.
package normalize
