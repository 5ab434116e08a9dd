package main

import(
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/awhall/gorast/pkg/viirs"
)

var(
	fGeo     string
	fDataset string
)

func init() {
	flag.StringVar(&fGeo, "geo", "", "override the georeference file path")
	flag.StringVar(&fDataset, "dataset", "Radiance", "which dataset of each band group to summarize")
	flag.Parse()
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: viirsls [flags] <viirs hdf5 file>")
	}

	v, err := viirs.Open(flag.Arg(0), fGeo)
	if err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	labels := v.Labels()
	sort.Strings(labels)
	for _, label := range labels {
		if label == "GEO" {
			fmt.Printf("%-6s (georeference)\n", label)
			continue
		}
		g, err := v.Read(label, fDataset)
		if err != nil {
			fmt.Printf("%-6s no %s dataset\n", label, fDataset)
			continue
		}
		fmt.Printf("%-6s %dx%d  %s: %s\n", label, g.Dx(), g.Dy(), fDataset, g.Stats())
	}

	if lats, err := v.Lats(); err == nil {
		lons, err := v.Lons()
		if err != nil {
			log.Fatal(err)
		}
		las, los := lats.Stats(), lons.Stats()
		fmt.Printf("extent: lat %.4f..%.4f lon %.4f..%.4f\n", las.Min, las.Max, los.Min, los.Max)
	} else {
		log.Printf("no georeference: %v", err)
	}
}
