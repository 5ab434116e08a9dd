package main

import(
	"flag"
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/awhall/gorast/pkg/grid"
	"github.com/awhall/gorast/pkg/landsat"
	"github.com/awhall/gorast/pkg/raster"
)

// Config drives one derivation run. Flags override the yaml file.
type Config struct {
	Product    string  // radiance, reflectance, btemp, ndvi, nbr, cloud, ltk
	Band       string  // band label, for the per-band products
	Infix      string  // filename infix for post-processed band variants
	ThresholdK float64 // cloud-top temperature cutoff for the cloud product
	Output     string  // output GeoTIFF path, empty for stats-only
}

var(
	fConfig    string
	fProduct   string
	fBand      string
	fInfix     string
	fThreshold float64
	fOutput    string
	fStats     bool
	fVerbose   bool
)

func init() {
	flag.StringVar(&fConfig, "config", "", "yaml config file with defaults for the other flags")
	flag.StringVar(&fProduct, "product", "", "what to compute: radiance, reflectance, btemp, ndvi, nbr, cloud, ltk")
	flag.StringVar(&fBand, "band", "", "band label for radiance/reflectance/btemp, e.g. 4 or 6H")
	flag.StringVar(&fInfix, "infix", "", "band filename infix for post-processed variants")
	flag.Float64Var(&fThreshold, "threshold", landsat.DefaultCloudTempK, "cloud-top temperature cutoff in Kelvin")
	flag.StringVar(&fOutput, "o", "", "output GeoTIFF path (float32)")
	flag.BoolVar(&fStats, "stats", false, "print result statistics")
	flag.BoolVar(&fVerbose, "v", false, "verbose logging")
	flag.Parse()
}

func loadConfig() Config {
	cfg := Config{ThresholdK: landsat.DefaultCloudTempK}
	if fConfig != "" {
		b, err := ioutil.ReadFile(fConfig)
		if err != nil {
			log.Fatalf("config read %s: %v", fConfig, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			log.Fatalf("config parse %s: %v", fConfig, err)
		}
	}
	if fProduct != "" { cfg.Product = fProduct }
	if fBand != "" { cfg.Band = fBand }
	if fInfix != "" { cfg.Infix = fInfix }
	if fThreshold != landsat.DefaultCloudTempK { cfg.ThresholdK = fThreshold }
	if fOutput != "" { cfg.Output = fOutput }
	return cfg
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: gorast [flags] <scene dir>")
	}
	cfg := loadConfig()
	if cfg.Product == "" {
		log.Fatalf("need a -product")
	}
	if fVerbose {
		log.Printf("config: %+v", cfg)
	}

	scene, err := landsat.NewScene(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer scene.Close()
	scene.Infix = cfg.Infix
	log.Printf("scene %s: spacecraft %s, new metadata format %v, software v%d",
		scene.Dirname, scene.Spacecraft, scene.NewMetaFormat, scene.MajorSWVersion)

	out, ref, err := compute(scene, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if out == nil {
		log.Fatalf("product %s is not available for this scene", cfg.Product)
	}

	if fStats || cfg.Output == "" {
		fmt.Printf("%s: %s\n", cfg.Product, out.Stats())
	}
	if cfg.Output != "" {
		w, err := ref.CloneGrid(cfg.Output, out, raster.Float32)
		if err != nil {
			log.Fatal(err)
		}
		w.Close()
		log.Printf("wrote %s", cfg.Output)
	}
}

// compute returns the derived grid plus the band whose georeference the
// output inherits.
func compute(s *landsat.Scene, cfg Config) (*grid.Grid, *landsat.Band, error) {
	bandFor := func(label string) (*landsat.Band, error) {
		if label == "" {
			return nil, fmt.Errorf("product %s needs a -band", cfg.Product)
		}
		return s.Band(label)
	}

	switch cfg.Product {

	case "radiance":
		b, err := bandFor(cfg.Band)
		if err != nil {
			return nil, nil, err
		}
		g, err := b.Radiance()
		return g, b, err

	case "reflectance":
		b, err := bandFor(cfg.Band)
		if err != nil {
			return nil, nil, err
		}
		g, err := b.Reflectance()
		return g, b, err

	case "btemp":
		b, err := bandFor(cfg.Band)
		if err != nil {
			return nil, nil, err
		}
		g, err := b.TKelvin()
		return g, b, err

	case "ndvi":
		g, err := s.NDVI()
		if err != nil {
			return nil, nil, err
		}
		b, err := s.Band("4") // 30m band, shares the index georeference
		return g, b, err

	case "nbr":
		g, err := s.NBR()
		if err != nil {
			return nil, nil, err
		}
		b, err := s.Band("4")
		return g, b, err

	case "cloud":
		g, err := s.NaiveCloud(cfg.ThresholdK)
		if err != nil {
			return nil, nil, err
		}
		b, err := s.Band(s.ThermalLabel())
		return g, b, err

	case "ltk":
		g, err := s.LTKCloud()
		if err != nil {
			return nil, nil, err
		}
		b, err := s.Band("1")
		return g, b, err
	}

	return nil, nil, fmt.Errorf("no product named %q", cfg.Product)
}
