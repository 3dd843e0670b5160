package formbind

import (
	"io/fs"

	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and the progressive-enhancement
// script so Go applications embedding the renderer without the bundled
// server can serve them.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formbind.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
