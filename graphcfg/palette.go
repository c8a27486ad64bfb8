package graphcfg

// DefaultPalette is the fixed, ordered list of colors auto-assigned to
// fields that lack an explicit color. It is the ColorBrewer Set3 scheme
// rotated to lead with red, matching the ordering the legacy viewer
// rendered with.
var DefaultPalette = []string{
	"#fb8072",
	"#8dd3c7",
	"#ffffb3",
	"#bebada",
	"#80b1d3",
	"#fdb462",
	"#b3de69",
	"#fccde5",
	"#d9d9d9",
	"#bc80bd",
	"#ccebc5",
	"#ffed6f",
}
