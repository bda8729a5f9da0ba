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

package health

import "context"

// Checker produces one Result when run.
type Checker interface {
	Check(ctx context.Context) (Result, error)
}

// CheckFunc adapts a plain function to a Checker.
type CheckFunc func(ctx context.Context) (Result, error)

func (f CheckFunc) Check(ctx context.Context) (Result, error) {
	return f(ctx)
}
