// crocket-ctfdump decodes a CTF (Compact Track Format) file and prints
// its tracks and keyframes, for inspecting save files produced by a
// crocket session.
package main

import (
	"fmt"
	"os"

	"github.com/kajott/crocket"
	"github.com/spf13/pflag"
)

func main() {
	var trackNames = pflag.StringArray("track", nil, "declare a track name to decode (repeatable)")
	var manifestPath = pflag.String("manifest", "", "YAML manifest of track names to decode against")
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	descriptors, err := descriptorsFor(*trackNames, *manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crocket-ctfdump: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "crocket-ctfdump: %v\n", err)
		os.Exit(1)
	}

	table := crocket.NewTable(descriptors)
	if !table.Decode(data) {
		fmt.Fprintf(os.Stderr, "crocket-ctfdump: %s: not a valid CTF file\n", pflag.Arg(0))
		os.Exit(1)
	}

	for i := 0; i < table.Len(); i++ {
		tr := table.Track(i)
		keys := tr.Keys()
		if len(keys) == 0 {
			continue
		}
		fmt.Printf("%s (%d keys)\n", tr.Name, len(keys))
		for _, k := range keys {
			fmt.Printf("  row=%-8d value=%-14g %s\n", k.Row, k.Value, k.Interp)
		}
	}
}

func descriptorsFor(trackNames []string, manifestPath string) ([]crocket.TrackDescriptor, error) {
	if manifestPath != "" {
		return crocket.LoadManifest(manifestPath)
	}
	descriptors := make([]crocket.TrackDescriptor, len(trackNames))
	for i, name := range trackNames {
		descriptors[i] = crocket.TrackDescriptor{Name: name, Value: new(float32)}
	}
	return descriptors, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Decode and print a CTF track file\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n  crocket-ctfdump [--track name ...] [--manifest file.yaml] file.ctf\n\n")
	pflag.PrintDefaults()
}
