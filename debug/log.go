package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/tony-format/docshape/encode"
	"github.com/signadot/tony-format/docshape/ir"
)

// Logf writes to stderr, rendering any *ir.Node argument as a compact document.
func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf, encode.EncodeWire(true)); err != nil {
			args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
			continue
		}
		args[i] = buf.String()
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
