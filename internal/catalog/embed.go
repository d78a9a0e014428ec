package catalog

import "embed"

//go:embed data/*.json
var dataFS embed.FS

const (
	areasFile      = "data/areas.json"
	shadowsFile    = "data/shadows.json"
	raritiesFile   = "data/rarities.json"
	areasSchema    = "data/areas.schema.json"
	shadowsSchema  = "data/shadows.schema.json"
	raritiesSchema = "data/rarities.schema.json"
)
