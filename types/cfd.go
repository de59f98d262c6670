package types

import (
	"strings"
)

type SurfaceFLAG uint8

const (
	Surface_None SurfaceFLAG = iota
	Surface_PEC
	Surface_IBC
)

var SurfaceNameMap = map[string]SurfaceFLAG{
	"pec":       Surface_PEC,
	"metal":     Surface_PEC,
	"ibc":       Surface_IBC,
	"impedance": Surface_IBC,
}

func (sf SurfaceFLAG) String() string {
	switch sf {
	case Surface_PEC:
		return "PEC"
	case Surface_IBC:
		return "IBC"
	default:
		return "None"
	}
}

/*
SurfaceTAG is a mesh marker label of the form "<type>[-<label>]", for example
"IBC-coating" or "pec". The type is case insensitive, the label is kept as written.
*/
type SurfaceTAG string

func NewSurfaceTAG(token string) SurfaceTAG {
	return SurfaceTAG(strings.TrimSpace(token))
}

func (st SurfaceTAG) GetFLAG() SurfaceFLAG {
	name := string(st)
	if ind := strings.Index(name, "-"); ind >= 0 {
		name = name[:ind]
	}
	if flag, ok := SurfaceNameMap[strings.ToLower(name)]; ok {
		return flag
	}
	return Surface_None
}

func (st SurfaceTAG) GetLabel() string {
	name := string(st)
	if ind := strings.Index(name, "-"); ind >= 0 {
		return name[ind+1:]
	}
	return ""
}
