package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitlayout/bits"
	"github.com/wippyai/bitlayout/layout"
	"github.com/wippyai/bitlayout/memview"
	"github.com/wippyai/bitlayout/witshape"
)

func main() {
	var (
		witFile     = flag.String("wit", "", "Path to WIT resolve JSON (wasm-tools component wit --json)")
		typeName    = flag.String("type", "", "Named type to decode")
		prim        = flag.String("prim", "", "Primitive WIT type to decode instead of a named type")
		value       = flag.String("value", "", "Value bytes in hex, least significant byte first")
		wasmFile    = flag.String("wasm", "", "Core wasm module whose exported memory holds the value")
		addr        = flag.Uint("addr", 0, "Address of the value in the module's memory")
		list        = flag.Bool("list", false, "List named types with their bit sizes and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *witFile == "" && *prim == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitview -wit <types.json> -type name [-value hex | -wasm <file.wasm> -addr n]")
		fmt.Fprintln(os.Stderr, "       bitview -prim <type> -value hex")
		fmt.Fprintln(os.Stderr, "       bitview -wit <types.json> -list")
		fmt.Fprintln(os.Stderr, "       bitview -wit <types.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		layout.SetLogger(logger.Named("layout"))
		witshape.SetLogger(logger.Named("witshape"))
		memview.SetLogger(logger.Named("memview"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*witFile, *prim); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*witFile, *prim, *typeName, *value, *wasmFile, uint32(*addr), *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(witFile, prim, typeName, valueStr, wasmFile string, addr uint32, listOnly bool) error {
	types, err := loadCatalog(witFile, prim)
	if err != nil {
		return err
	}

	if listOnly {
		for _, ti := range types {
			fmt.Println(formatType(ti))
		}
		return nil
	}

	ti, err := selectType(types, typeName)
	if err != nil {
		return err
	}
	if ti.err != nil {
		return fmt.Errorf("type %s: %w", ti.name, ti.err)
	}

	var vec *bits.Vector
	switch {
	case wasmFile != "":
		vec, err = loadFromModule(wasmFile, addr, ti)
	default:
		vec, err = parseValue(valueStr, ti.size)
	}
	if err != nil {
		return err
	}

	rows, err := describe(ti.shape, vec)
	if err != nil {
		return fmt.Errorf("decode %s: %w", ti.name, err)
	}

	fmt.Printf("Type: %s (%d bits)\n\n", ti.name, ti.size)
	for _, r := range rows {
		fmt.Println(formatRow(r))
	}
	return nil
}

func selectType(types []typeInfo, name string) (typeInfo, error) {
	if name == "" {
		if len(types) == 1 {
			return types[0], nil
		}
		return typeInfo{}, fmt.Errorf("use -type to select one of %d types (see -list)", len(types))
	}
	for _, ti := range types {
		if ti.name == name {
			return ti, nil
		}
	}
	return typeInfo{}, fmt.Errorf("type %q not found", name)
}

func loadFromModule(wasmFile string, addr uint32, ti typeInfo) (*bits.Vector, error) {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("instantiate: %w", err)
	}
	if mod.Memory() == nil {
		return nil, fmt.Errorf("module %s has no memory", wasmFile)
	}

	l, err := layout.Cast(ti.shape)
	if err != nil {
		return nil, fmt.Errorf("memory loads need an aggregate type, %s is %v", ti.name, ti.shape)
	}
	v, err := memview.Load(memview.Wrap(mod.Memory()), addr, l)
	if err != nil {
		return nil, err
	}
	return v.AsValue(), nil
}

func formatType(ti typeInfo) string {
	if ti.err != nil {
		return fmt.Sprintf("  %-24s (%v)", ti.name, ti.err)
	}
	return fmt.Sprintf("  %-24s %d bits", ti.name, ti.size)
}

func formatRow(r row) string {
	label := strings.Repeat("  ", r.depth) + r.key
	return fmt.Sprintf("%-32s @%-4d w%-4d %s", label, r.offset, r.width, r.value)
}
