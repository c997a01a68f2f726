package web

import _ "embed"

// Index contiene la UI de una sola página servida en la ruta raíz.
//
//go:embed index.html
var Index []byte
