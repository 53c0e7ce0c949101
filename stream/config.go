package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the streamer configuration read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Qos      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Matrix struct {
		Width      int           `yaml:"width"`
		Height     int           `yaml:"height"`
		FrameRate  float64       `yaml:"frameRate"`
		Brightness float64       `yaml:"brightness"`
		FadeIn     time.Duration `yaml:"fadeIn"`
		Encoding   string        `yaml:"encoding"`
	} `yaml:"matrix"`
	Playlist struct {
		Files          []string      `yaml:"files"`
		AnimationTime  time.Duration `yaml:"animationTime"`
		TransitionTime time.Duration `yaml:"transitionTime"`
	} `yaml:"playlist"`
	Watch struct {
		Enabled  bool          `yaml:"enabled"`
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"watch"`
	Listen string `yaml:"listen"`
	Static string `yaml:"static"`
}

const (
	// EncodingJSON sends frames as nested JSON arrays of BGRA pixels.
	EncodingJSON = "json"
	// EncodingBinary sends frames in the Frame binary format.
	EncodingBinary = "binary"
)

// MaxFrameRate is the highest number of frames per second that can be
// streamed.
const MaxFrameRate = 1000

// ReadConfig decodes a YAML configuration from r, filling in defaults for
// unset optional values.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	c.Mqtt.ClientID = "ledgif"
	c.Mqtt.Topics.Stream = "home/matrix/stream"
	c.Matrix.FrameRate = 30
	c.Matrix.Brightness = 1
	c.Matrix.Encoding = EncodingJSON
	c.Playlist.AnimationTime = 5 * time.Minute
	c.Playlist.TransitionTime = 5 * time.Second
	c.Watch.Debounce = -1
	c.Listen = ":3000"
	c.Static = "client/dist"

	err := yaml.NewDecoder(r).Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return c, err
	}
	return c, c.Validate()
}

// Validate checks that c describes a usable streamer.
func (c *Config) Validate() error {
	switch {
	case c.Mqtt.URL == "":
		return errors.New("mqtt url not set")
	case c.Mqtt.Qos > 2:
		return fmt.Errorf("invalid mqtt qos: %d", c.Mqtt.Qos)
	case c.Matrix.Width <= 0 || c.Matrix.Height <= 0,
		c.Matrix.Width > math.MaxUint16 || c.Matrix.Height > math.MaxUint16:
		return fmt.Errorf("invalid matrix size: %dx%d", c.Matrix.Width, c.Matrix.Height)
	case c.Matrix.FrameRate <= 0 || c.Matrix.FrameRate > MaxFrameRate:
		return fmt.Errorf("invalid frame rate: %v", c.Matrix.FrameRate)
	case c.Matrix.Brightness < 0 || c.Matrix.Brightness > 1:
		return fmt.Errorf("brightness out of range: %v", c.Matrix.Brightness)
	case c.Matrix.Encoding != EncodingJSON && c.Matrix.Encoding != EncodingBinary:
		return fmt.Errorf("unknown encoding: %q", c.Matrix.Encoding)
	case len(c.Playlist.Files) == 0:
		return errors.New("no animation files in playlist")
	case c.Playlist.TransitionTime > c.Playlist.AnimationTime:
		return errors.New("transition time longer than animation time")
	}
	return nil
}
