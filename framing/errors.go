// File: framing/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package framing

import (
	"fmt"

	"github.com/momentics/hiocore/api"
)

// ErrInvalidParserKind is returned by Create when kind is unrecognized.
// It also satisfies errors.Is(err, api.ErrNotSupported).
var ErrInvalidParserKind = fmt.Errorf("framing: invalid parser kind: %w", api.ErrNotSupported)
