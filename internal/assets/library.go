package assets

import (
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/logging"
	"github.com/google/uuid"
)

type AssetID string

func makeAssetID() AssetID {
	return AssetID(uuid.NewString())
}

// TextureSource says where a material's image came from.
type TextureSource int

const (
	TextureFile TextureSource = iota
	TextureDefault
	TextureMissing
)

type TextureAsset struct {
	ID     AssetID
	Path   string
	Source TextureSource
	Image  *Image
}

type MaterialAsset struct {
	ID       AssetID
	Material core.Material
	Texture  *TextureAsset
}

// Library owns the loaded model and the decoded images of its materials.
// Textures are cached by resolved path; failures fall back to magenta and
// texture-less materials to white.
type Library struct {
	log       logging.Logger
	modelID   AssetID
	model     *core.Model
	materials []MaterialAsset
	textures  map[string]*TextureAsset
	white     *TextureAsset
	magenta   *TextureAsset
}

func NewLibrary(log logging.Logger) *Library {
	return &Library{
		log:      logging.OrNop(log),
		textures: make(map[string]*TextureAsset),
		white:    &TextureAsset{ID: makeAssetID(), Source: TextureDefault, Image: SolidImage(White)},
		magenta:  &TextureAsset{ID: makeAssetID(), Source: TextureMissing, Image: SolidImage(Magenta)},
	}
}

// LoadModel loads path and resolves every material texture.
func (l *Library) LoadModel(path string) (*core.Model, error) {
	model, err := LoadModel(path, l.log)
	if err != nil {
		return nil, err
	}
	l.model = model
	l.modelID = makeAssetID()
	l.materials = make([]MaterialAsset, len(model.Materials))
	for i, m := range model.Materials {
		l.materials[i] = MaterialAsset{
			ID:       makeAssetID(),
			Material: m,
			Texture:  l.ResolveTexture(m),
		}
	}
	return model, nil
}

func (l *Library) Model() *core.Model { return l.model }

func (l *Library) ModelID() AssetID { return l.modelID }

// Materials is parallel to Model().Materials.
func (l *Library) Materials() []MaterialAsset { return l.materials }

// Default is the texture for meshes without a material.
func (l *Library) Default() *TextureAsset { return l.white }

func (l *Library) ResolveTexture(m core.Material) *TextureAsset {
	if m.DiffuseTexture == "" {
		return l.white
	}
	if t, ok := l.textures[m.DiffuseTexture]; ok {
		return t
	}
	img, err := DecodeTexture(m.DiffuseTexture)
	if err != nil {
		l.log.Warnf("material %q: %v, using fallback", m.Name, err)
		l.textures[m.DiffuseTexture] = l.magenta
		return l.magenta
	}
	t := &TextureAsset{ID: makeAssetID(), Path: m.DiffuseTexture, Source: TextureFile, Image: img}
	l.textures[m.DiffuseTexture] = t
	l.log.Debugf("decoded %s (%dx%d)", m.DiffuseTexture, img.Width, img.Height)
	return t
}
