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


// Package storage defines the process-scoped document store that holds
// the latest successfully processed collection.
//
// The store has a deliberately small lifecycle: it starts empty, is
// replaced wholesale on each successful pipeline run, and never merges
// across runs. Replacement is atomic from the caller's perspective
// (last writer wins). By default the backing store is in-memory and does
// not survive a process restart; callers who want the latest run on disk
// can open the badger backend with a path instead.
package storage
