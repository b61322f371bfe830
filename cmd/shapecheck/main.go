// Command shapecheck reports unserializable type arguments to shape
// resolution functions. It can run standalone or as a go vet tool:
//
//	go vet -vettool=$(which shapecheck) ./...
package main

import (
	"github.com/signadot/tony-format/docshape/shapecheck"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(shapecheck.Analyzer)
}
