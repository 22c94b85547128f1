package types

import (
	jsoniter "github.com/json-iterator/go"
)

// ModuleCdc encodes store values and genesis. Field order is fixed by the
// struct definitions, so encodings are deterministic.
var ModuleCdc = jsoniter.ConfigCompatibleWithStandardLibrary
