package assets

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/udhos/gwob"
)

func loadMaterialLib(path string, opts *gwob.ObjParserOptions) (gwob.MaterialLib, error) {
	f, err := os.Open(path)
	if err != nil {
		return gwob.MaterialLib{}, openError(path, err)
	}
	defer f.Close()

	lib, err := gwob.ReadMaterialLibFromReader(bufio.NewReader(f), opts)
	if err != nil {
		return gwob.MaterialLib{}, &LoadError{Path: path, Kind: ErrMalformed, Err: err}
	}
	return lib, nil
}

// materialFor keeps the diffuse map, resolved against the MTL directory.
// Options such as -s or -bm precede the file name in map_Kd.
func materialFor(mtlDir, name string, m *gwob.Material) core.Material {
	mat := core.Material{Name: name}
	if m == nil {
		return mat
	}
	if fields := strings.Fields(m.MapKd); len(fields) > 0 {
		tex := strings.ReplaceAll(fields[len(fields)-1], `\`, "/")
		mat.DiffuseTexture = filepath.Join(mtlDir, filepath.FromSlash(tex))
	}
	return mat
}
