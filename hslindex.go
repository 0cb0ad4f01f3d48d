package hslindex

import (
	"github.com/housing-studio/hsl-index/internal/symbol"
	"github.com/housing-studio/hsl-index/internal/watch"
)

// Public type aliases for internal types surfaced through the Engine API.
// These are Go type aliases (=), identical to the internal types at compile
// time, so no conversion is needed.

type Declaration = symbol.Declaration
type Param = symbol.Param
type Kind = symbol.Kind
type FileSet = symbol.FileSet
type WatchEvent = watch.Event

const (
	KindFunction   = symbol.KindFunction
	KindMacro      = symbol.KindMacro
	KindConstant   = symbol.KindConstant
	KindStruct     = symbol.KindStruct
	KindEnum       = symbol.KindEnum
	KindEnumMember = symbol.KindEnumMember
	KindStat       = symbol.KindStat
)
