/*
   Copyright 2025 The Myrrh Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"

	"github.com/byon/myrrh/policy"
)

// buildPolicy maps a RotationSpec.Kind to the matching policy preset.
// "size-resize" and "dated" and "size-new" force a ".log" extension,
// following their respective presets; ext is honored only by "indexed".
func buildPolicy(kind, dir, baseName, ext string, maxBytes int64) (*policy.Policy, error) {
	switch kind {
	case "size-resize":
		return policy.SizeRestrictedLog(dir, baseName, maxBytes)
	case "size-new":
		return policy.SizeRestrictedLogs(dir, baseName, maxBytes)
	case "dated":
		return policy.DatedFolderLog(dir, baseName)
	case "indexed":
		return policy.IndexedLog(dir, baseName, ext)
	default:
		return nil, fmt.Errorf("config: unknown rotation kind %q", kind)
	}
}
