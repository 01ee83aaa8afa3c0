package s3

import (
	"github.com/gobeaver/objpath"
)

func init() {
	objpath.RegisterScheme(Scheme, func(rawURI string) (objpath.Path, error) {
		return New(rawURI)
	})
}
