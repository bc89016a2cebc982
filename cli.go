package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `MiniC - an educational compiler for a small C-like language

Usage:
    minic <command> [arguments]

Commands:
    run <file>      Compile a .mc file and interpret the optimized TAC
    build <file>    Compile a .mc file to pseudocode assembly
    check <file>    Parse and semantically check a .mc file
    eval <code>     Compile and run inline MiniC code
    help            Show this help message

Examples:
    minic run examples/sum.mc
    minic build -o sum.asm examples/sum.mc
    minic eval 'int x; x = 2 + 3; print(x);'
    minic check myfile.mc

Use "minic <command> -h" for more information about a command.
`)
}

// compileToTAC runs lexing, parsing, semantic analysis and IR
// generation. The input must end with a 0 byte.
func compileToTAC(input []byte) (*TACProgram, error) {
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	if err := NewAnalyzer().Analyze(program); err != nil {
		return nil, err
	}

	return NewIRGenerator().Generate(program)
}

type buildOptions struct {
	verbose    bool
	showTokens bool
	showAST    bool
	showIR     bool
	noOptimize bool
}

// compileProgram runs the full pipeline and returns the emitted
// pseudocode assembly.
func compileProgram(input []byte, opts buildOptions) (string, error) {
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return "", err
	}
	if opts.showTokens {
		fmt.Println("Tokens:")
		for _, tok := range tokens {
			fmt.Printf("  %s %q %d:%d\n", tok.Type, tok.Literal, tok.Line, tok.Col)
		}
	}

	parser := NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		return "", err
	}
	if opts.showAST {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}

	if err := NewAnalyzer().Analyze(program); err != nil {
		return "", err
	}

	tac, err := NewIRGenerator().Generate(program)
	if err != nil {
		return "", err
	}
	if opts.showIR {
		fmt.Println("Three-address code:")
		fmt.Print(FormatTAC(tac.Instructions))
	}

	if opts.noOptimize {
		if opts.verbose {
			fmt.Println("Optimization disabled")
		}
	} else {
		originalCount := len(tac.Instructions)
		tac.Instructions = Optimize(tac.Instructions)
		if opts.verbose {
			fmt.Printf("Optimized %d instructions down to %d\n", originalCount, len(tac.Instructions))
		}
		if opts.showIR {
			fmt.Println("Optimized three-address code:")
			fmt.Print(FormatTAC(tac.Instructions))
		}
	}

	return EmitAssembly(tac), nil
}

// runSource compiles source and interprets the optimized TAC, writing
// each printed value on its own line to stdout.
func runSource(input []byte, verbose, noOptimize bool) error {
	tac, err := compileToTAC(input)
	if err != nil {
		return err
	}

	instructions := tac.Instructions
	if !noOptimize {
		optimized := Optimize(instructions)
		if verbose {
			fmt.Printf("Optimized %d instructions down to %d\n", len(instructions), len(optimized))
		}
		instructions = optimized
	}

	output, err := NewInterpreter().Run(instructions)
	if err != nil {
		return err
	}
	for _, line := range output {
		fmt.Println(line)
	}
	return nil
}

func readSourceFile(filename string) []byte {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	// Add null terminator as required by lexer
	return append(sourceBytes, '\x00')
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	noOptimize := fs.Bool("no-optimize", false, "Disable optimization passes")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic run [-v] [-no-optimize] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .mc file and interpret the optimized TAC\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	input := readSourceFile(fs.Arg(0))
	if err := runSource(input, *verbose, *noOptimize); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.asm)")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	showTokens := fs.Bool("show-tokens", false, "Display lexer tokens")
	showAST := fs.Bool("show-ast", false, "Display the AST as an s-expression")
	showIR := fs.Bool("show-ir", false, "Display TAC before and after optimization")
	noOptimize := fs.Bool("no-optimize", false, "Disable optimization passes")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic build [-o output] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .mc file to pseudocode assembly\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".mc") + ".asm"
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outputFile)
	}

	input := readSourceFile(filename)
	assembly, err := compileProgram(input, buildOptions{
		verbose:    *verbose,
		showTokens: *showTokens,
		showAST:    *showAST,
		showIR:     *showIR,
		noOptimize: *noOptimize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(assembly), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(assembly))
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show the AST after a successful check")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic check [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and semantically check a .mc file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)
	input := readSourceFile(filename)

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		os.Exit(1)
	}

	parser := NewParser(tokens)
	program, err := parser.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		os.Exit(1)
	}

	if err := NewAnalyzer().Analyze(program); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)
	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	noOptimize := fs.Bool("no-optimize", false, "Disable optimization passes")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic eval [-v] [-no-optimize] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile and run inline MiniC code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	input := []byte(fs.Arg(0) + "\x00")
	if err := runSource(input, *verbose, *noOptimize); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		runCommand(args)
	case "build":
		buildCommand(args)
	case "check":
		checkCommand(args)
	case "eval":
		evalCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
