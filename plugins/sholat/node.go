package sholat

import (
	"context"
	"fmt"
	"time"

	"github.com/BDNK1/sflowg-sholat/runtime/plugin"
)

// NodeType is the name the node is registered and referenced under.
const NodeType = "sholatReminderNode"

// Parameter names and the output fields merged onto each record.
const (
	ParamLocationCity = "locationCity"
	ParamDateTime     = "dateTime"

	FieldLocationCity      = "locationCity"
	FieldResponseCities    = "responseCities"
	FieldResponsePrayTimes = "responsePrayTimes"

	DefaultDateTime = "2025-07-31"
)

// Config holds the node configuration with declarative tags
type Config struct {
	BaseURL    string        `yaml:"base_url" default:"https://api.myquran.com/v2" validate:"required,url_format"`
	Timeout    time.Duration `yaml:"timeout" default:"0s" validate:"gte=0"`
	Debug      bool          `yaml:"debug" default:"false"`
	EscapePath bool          `yaml:"escape_path" default:"false"`
}

// SholatNode resolves a city name through myquran and fetches its prayer
// schedule for a date, once per input record.
type SholatNode struct {
	Config Config // Exported so the host can set it before Initialize
	client *Client
}

// New returns a node configured from one definition's raw config map.
func New(raw map[string]any) (*SholatNode, error) {
	node := &SholatNode{}
	if err := plugin.InitializeConfig(&node.Config, raw); err != nil {
		return nil, err
	}
	return node, nil
}

var (
	_ plugin.Node        = &SholatNode{}
	_ plugin.Initializer = &SholatNode{}
	_ plugin.Shutdowner  = &SholatNode{}
)

// Initialize implements the plugin.Initializer interface.
// Config is already validated by the host before this is called
func (n *SholatNode) Initialize(ctx context.Context) error {
	n.client = NewClient(n.Config)
	return nil
}

// Shutdown implements the plugin.Shutdowner interface
func (n *SholatNode) Shutdown(ctx context.Context) error {
	// Resty doesn't require explicit cleanup, but we can nil the client
	n.client = nil
	return nil
}

func (n *SholatNode) Description() plugin.NodeDescription {
	return plugin.NodeDescription{
		Name:         NodeType,
		DisplayName:  "Sholat Reminder",
		Description:  "Fetches prayer times for a city and date",
		Group:        []string{"transform"},
		Version:      1,
		Icon:         "file:icon-sholat.svg",
		UsableAsTool: true,
		Properties: []plugin.NodeProperty{
			{
				Name:        ParamLocationCity,
				DisplayName: "Location City",
				Type:        "string",
				Default:     "",
				Placeholder: "Jakarta",
				Description: "City name to search for prayer times",
			},
			{
				Name:        ParamDateTime,
				DisplayName: "DateTime",
				Type:        "string",
				Default:     DefaultDateTime,
				Placeholder: DefaultDateTime,
				Description: "Date in YYYY-MM-DD format to get prayer times for",
			},
		},
	}
}

// Execute processes records strictly in order. A successful record is
// replaced in place by its enriched copy. On failure the record stays as it
// was; with continue-on-fail an error entry is appended to the end of the
// output, otherwise the run stops and the error is tagged with the index.
func (n *SholatNode) Execute(fns plugin.ExecuteFunctions) ([]plugin.Item, error) {
	if n.client == nil {
		return nil, fmt.Errorf("%s: node is not initialized", NodeType)
	}

	items := fns.InputData()
	l := fns.Logger()

	output := make([]plugin.Item, len(items))
	copy(output, items)

	for i, item := range items {
		enriched, err := n.processItem(fns, item, i)
		if err == nil {
			output[i] = enriched
			continue
		}

		if fns.ContinueOnFail() {
			l.WarnContext(fns, "Record failed, continuing",
				"item_index", i,
				"error", err)

			failed := plugin.NewItem(item.JSON)
			failed.Error = err
			failed.PairedItem = &plugin.PairedItem{Item: i}
			output = append(output, failed)
			continue
		}

		return nil, plugin.AttachItemIndex(fns.Node(), err, i)
	}

	return output, nil
}

// processItem runs the lookup and fetch for one record and returns an
// enriched copy of it. Nothing is carried over between records.
func (n *SholatNode) processItem(fns plugin.ExecuteFunctions, item plugin.Item, i int) (plugin.Item, error) {
	locationCity, err := plugin.StringParameter(fns, ParamLocationCity, i, "")
	if err != nil {
		return plugin.Item{}, err
	}
	dateTime, err := plugin.StringParameter(fns, ParamDateTime, i, "")
	if err != nil {
		return plugin.Item{}, err
	}

	cities, err := n.client.SearchCity(fns, locationCity)
	if err != nil {
		return plugin.Item{}, err
	}

	out := item.Clone()
	out.JSON[FieldLocationCity] = locationCity
	out.JSON[FieldResponseCities] = cities
	delete(out.JSON, FieldResponsePrayTimes)

	cityID, ok := FirstCityID(cities)
	if !ok {
		fns.Logger().DebugContext(fns, "No city matched, skipping schedule",
			"item_index", i,
			"location_city", locationCity)
		return out, nil
	}

	schedule, err := n.client.Schedule(fns, cityID, dateTime)
	if err != nil {
		return plugin.Item{}, err
	}
	out.JSON[FieldResponsePrayTimes] = schedule

	fns.Logger().DebugContext(fns, "Fetched prayer schedule",
		"item_index", i,
		"location_city", locationCity,
		"city_id", cityID,
		"candidates", len(cities),
		"date", dateTime)

	return out, nil
}
