// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package once

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests of the generic cell protocol,
// which guards its payload through a separate atomic word and therefore
// triggers false positives.
const RaceEnabled = true
