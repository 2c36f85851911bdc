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


// Package httpapi exposes the contact store and search pipelines over
// a JSON HTTP API.
//
// Routes:
//
//	POST   /api/search             field-weighted search
//	POST   /api/voice-search       intent-driven search with fallback
//	GET    /api/contacts           list contacts, newest first
//	POST   /api/contacts           capture a new contact
//	GET    /api/contacts/{id}      fetch one contact
//	PUT    /api/contacts/{id}      partial update (PATCH also accepted)
//	DELETE /api/contacts/{id}      delete
//	GET    /api/tags               tag frequencies for quick filters
//
// Configuration comes from the environment with the REACH_ prefix, see
// LoadConfig. Construction:
//
//	cfg, _ := httpapi.LoadConfig()
//	srv, err := httpapi.NewServer(cfg, repo, searchPipeline, capturePipeline)
//	if err != nil {
//		// handle
//	}
//	err = srv.ListenAndServe()
package httpapi
