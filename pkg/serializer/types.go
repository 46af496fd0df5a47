// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package serializer

import "context"

// Serializer writes a value to some destination. Writer is the only
// implementation in this package; the CLI accepts the interface so tests can
// capture output.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

var _ Serializer = (*Writer)(nil)
