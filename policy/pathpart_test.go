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

package policy

import "testing"

func TestPathPart_GenerateRegexAgreement(t *testing.T) {
	text, err := NewText("myrrh")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}

	parts := []PathPart{text, NewFolder(), NewDate(), NewTime(), NewIndex(), NewProcessID()}
	for _, part := range parts {
		got := part.Generate()
		if !part.Regex().MatchString(got) {
			t.Fatalf("%T: generated %q does not match its own regex %q", part, got, part.Regex().String())
		}
	}
}

func TestText_RejectsFolderSeparators(t *testing.T) {
	if _, err := NewText("a/b"); err == nil {
		t.Fatalf("expected ErrIllegalText for '/'")
	}
	if _, err := NewText(`a\b`); err == nil {
		t.Fatalf("expected ErrIllegalText for '\\'")
	}
}

func TestIndex_Monotonic(t *testing.T) {
	idx := NewIndex()
	for i := 1; i <= 5; i++ {
		got := idx.Generate()
		want := itoa(i)
		if got != want {
			t.Fatalf("Generate() #%d = %q, want %q", i, got, want)
		}
	}
}

func itoa(i int) string {
	// local helper to avoid importing strconv just for the test literal
	digits := "0123456789"
	if i == 0 {
		return "0"
	}
	var b []byte
	for i > 0 {
		b = append([]byte{digits[i%10]}, b...)
		i /= 10
	}
	return string(b)
}

func TestTime_UniqueWithinProcess(t *testing.T) {
	tm := NewTime()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		got := tm.Generate()
		if seen[got] {
			t.Fatalf("duplicate Time.Generate() result: %q", got)
		}
		seen[got] = true
	}
}

func TestIndex_IsEarlierIsNumeric(t *testing.T) {
	idx := NewIndex()
	if !idx.IsEarlier("2", "10") {
		t.Fatalf("numeric comparison: expected \"2\" earlier than \"10\"")
	}
	if idx.IsEarlier("10", "2") {
		t.Fatalf("numeric comparison: \"10\" should not be earlier than \"2\"")
	}
}

func TestDate_AppendsDateChangedRestriction(t *testing.T) {
	store := NewRestrictionStore()
	NewDate().AppendRestrictions(store)
	if len(store.restrictions) != 1 {
		t.Fatalf("Date should append exactly one restriction, got %d", len(store.restrictions))
	}
}

func TestOtherParts_NoRestrictions(t *testing.T) {
	store := NewRestrictionStore()
	NewFolder().AppendRestrictions(store)
	NewIndex().AppendRestrictions(store)
	NewTime().AppendRestrictions(store)
	NewProcessID().AppendRestrictions(store)
	if len(store.restrictions) != 0 {
		t.Fatalf("expected no restrictions, got %d", len(store.restrictions))
	}
}
