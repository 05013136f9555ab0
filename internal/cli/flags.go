package cli

import "litport/internal/config"

// Flags holds command-line flags
type Flags struct {
	Root         string
	LogLevel     string
	Report       string
	Output       string
	Clean        bool
	Glob         bool
	KeepLegacy   bool
	NoVCS        bool
	AllowUnknown bool
	LegacyMatch  bool
	Progress     bool
	SaveReport   bool
	Plain        bool
	NameFilter   string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Root:         f.Root,
		Output:       f.Output,
		Clean:        f.Clean,
		Glob:         f.Glob,
		KeepLegacy:   f.KeepLegacy,
		NoVCS:        f.NoVCS,
		AllowUnknown: f.AllowUnknown,
		LegacyMatch:  f.LegacyMatch,
		Progress:     f.Progress,
		SaveReport:   f.SaveReport,
		Plain:        f.Plain,
		Report:       f.Report,
		NameFilter:   f.NameFilter,
		LogLevel:     f.LogLevel,
	}
}

// ListFlags selects what the list command prints
type ListFlags struct {
	Error      bool
	Symbol     bool
	Modfile    bool
	Generic    bool
	Folding    bool
	Preprocess bool
	XFail      bool
	All        bool
	Info       bool
	Category   string
}
