package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/reach"
	"github.com/poiesic/reach/ingestion"
)

var samples = []ingestion.CaptureRequest{
	{
		Name: "Ana Silva", Company: "Helios Energy", Role: "Head of Partnerships",
		Industry: "Climate Tech", Location: "Lisbon", MeetingLocation: "Web Summit",
		EventType: "conference", Tags: []string{"solar", "partnerships"},
		RawContext: "Met at the climate pavilion, interested in grid storage pilots.",
	},
	{
		Name: "Ben Okafor", Company: "Nexus Robotics", Role: "CTO",
		Industry: "Robotics", Location: "Berlin", MeetingLocation: "TechCrunch Disrupt",
		EventType: "conference", Tags: []string{"robotics", "hardware"}, Priority: 80,
		RawContext: "Building warehouse picking arms, hiring Go engineers.",
	},
	{
		Name: "Carla Mendes", Company: "Vault Capital", Role: "Partner",
		Industry: "Finance", Location: "Lisbon", MeetingLocation: "founders dinner",
		EventType: "dinner", Tags: []string{"fintech", "investor"}, Priority: 90,
		RawContext: "Leads seed rounds in fintech, asked for our deck.",
	},
	{
		Name: "Diego Ramos", Company: "Plaid", Role: "Solutions Engineer",
		Industry: "Fintech", Location: "San Francisco", MeetingLocation: "API meetup",
		EventType: "meetup", Tags: []string{"fintech", "api"},
		RawContext: "Deep knowledge of open banking integrations.",
	},
	{
		Name: "Emma Larsen", Company: "Nordic Health", Role: "Product Manager",
		Industry: "Healthcare", Location: "Copenhagen", MeetingLocation: "HLTH Europe",
		EventType: "conference", Tags: []string{"healthtech", "product"},
		RawContext: "Exploring remote patient monitoring, intro via Ben.",
	},
	{
		Name: "Farid Azimi", Company: "Cloudline", Role: "DevOps Lead",
		Industry: "Software", Location: "Toronto", MeetingLocation: "KubeCon",
		EventType: "conference", Tags: []string{"kubernetes", "infra"},
		RawContext: "Runs a platform team of twelve, big badger fan apparently.",
	},
	{
		Name: "Grace Tanaka", Company: "Kyoto Materials", Role: "Research Director",
		Industry: "Manufacturing", Location: "Kyoto", MeetingLocation: "materials science expo",
		EventType: "expo", Tags: []string{"materials", "research"},
		RawContext: "Working on battery cathode chemistry, wants a supplier intro.",
	},
	{
		Name: "Hugo Leclerc", Company: "Ferme Verte", Role: "Founder",
		Industry: "Agriculture", Location: "Lyon", MeetingLocation: "agtech pitch night",
		EventType: "pitch", Tags: []string{"agtech", "founder"}, Priority: 60,
		RawContext: "Vertical farming startup, raising a bridge round this fall.",
	},
}

var seedFileName = flag.String("src", "", "file of seed data, one JSON contact per line")
var dbPath = flag.String("db", "./contacts_db", "path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// contactsFromFile returns an iterator over JSON-encoded capture
// requests, one per line. Malformed lines are logged and skipped.
func contactsFromFile(filename string) (iter.Seq[ingestion.CaptureRequest], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(ingestion.CaptureRequest) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var req ingestion.CaptureRequest
			if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
				slog.Warn("skipping malformed seed line", "err", err)
				continue
			}
			if !yield(req) {
				return
			}
		}
	}, nil
}

// contactsFromSlice returns an iterator over a slice of capture requests.
func contactsFromSlice(reqs []ingestion.CaptureRequest) iter.Seq[ingestion.CaptureRequest] {
	return func(yield func(ingestion.CaptureRequest) bool) {
		for _, req := range reqs {
			if !yield(req) {
				return
			}
		}
	}
}

func main() {
	db, err := reach.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	capture, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer capture.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[ingestion.CaptureRequest]
	if seedFileName != nil && *seedFileName != "" {
		source, err = contactsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = contactsFromSlice(samples)
	}

	for req := range source {
		contact, err := capture.Capture(ctx, &req)
		if err != nil {
			slog.Error("failed to capture contact", "name", req.Name, "err", err)
			continue
		}
		slog.Info("seeded contact", "id", contact.Id, "name", contact.Name)
	}
}
