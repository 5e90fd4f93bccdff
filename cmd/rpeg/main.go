// Command rpeg compresses a PPM image to the packed rpeg stream format,
// or decompresses a packed stream back to PPM.
//
// Usage:
//
//	rpeg -c <file>   # compress file (a PPM), write the stream to stdout
//	rpeg -d <file>   # decompress file (a stream), write a PPM to stdout
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielediazp/rpeg"
)

func main() {
	os.Exit(run())
}

func run() int {
	compressFile := flag.String("c", "", "compress the given PPM file, writing the stream to stdout")
	decompressFile := flag.String("d", "", "decompress the given stream file, writing a PPM to stdout")
	flag.Parse()

	switch {
	case *compressFile != "" && *decompressFile != "":
		fmt.Fprintln(os.Stderr, "rpeg: -c and -d are mutually exclusive")
		return 1
	case *compressFile != "":
		return doCompress(*compressFile)
	case *decompressFile != "":
		return doDecompress(*decompressFile)
	default:
		fmt.Fprintln(os.Stderr, "rpeg: exactly one of -c or -d is required")
		flag.Usage()
		return 1
	}
}

func doCompress(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: %v\n", err)
		return 1
	}
	defer f.Close()

	img, err := rpeg.ReadPPM(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: reading %s: %v\n", path, err)
		return 1
	}
	if err := rpeg.Compress(os.Stdout, img); err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: compressing %s: %v\n", path, err)
		return 1
	}
	return 0
}

func doDecompress(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: %v\n", err)
		return 1
	}
	defer f.Close()

	img, err := rpeg.Decompress(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: decompressing %s: %v\n", path, err)
		return 1
	}
	if err := rpeg.WritePPM(os.Stdout, img); err != nil {
		fmt.Fprintf(os.Stderr, "rpeg: writing PPM: %v\n", err)
		return 1
	}
	return 0
}
