package builders

import (
	"github.com/simonhull/firebird-suite/nest/internal/artifact"
	"github.com/simonhull/firebird-suite/nest/internal/options"
)

// UI contributes tailwind and postcss configs, base styles and the UI
// packages when isUiConfigEnabled is on.
type UI struct{}

func (u *UI) ID() string { return "ui" }

func (u *UI) Contribute(view artifact.View, opts options.Resolved) ([]artifact.Contribution, error) {
	if !opts.Bool(OptUI, true) {
		return nil, nil
	}

	configs, err := assetFiles([]string{"nextjs/tailwind.config.js", "nextjs/postcss.config.js"}, "", true)
	if err != nil {
		return nil, err
	}
	styles, err := assetFiles([]string{"nextjs/styles/globals.css"}, "", false)
	if err != nil {
		return nil, err
	}
	deps, err := bundle(
		[]string{"@headlessui/react", "@next/font"},
		[]string{"tailwindcss", "postcss", "autoprefixer"},
	)
	if err != nil {
		return nil, err
	}

	out := append(configs, styles...)
	return append(out, deps...), nil
}
