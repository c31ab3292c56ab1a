// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spadist

import "github.com/pkg/errors"

// ErrNoServingRoot signals that the serving root directory is missing or not
// a directory.
var ErrNoServingRoot = errors.New("serving root not found")

// ErrNoRootDocument signals that the SPA's root (index) document is missing.
var ErrNoRootDocument = errors.New("root document not found")
