package stream

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/ledgif/util"
)

// Publisher sends an encoded frame to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	client mqtt.Client
	qos    byte
}

// NewMQTTPublisher returns a Publisher that publishes with client and waits
// for each publish to complete.
func NewMQTTPublisher(client mqtt.Client, qos byte) Publisher {
	return &mqttPublisher{client: client, qos: qos}
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Streamer that streams frames to a matrix device.
type Streamer struct {
	publisher  Publisher
	controller *Controller
	topic      string
	interval   time.Duration
	encoding   string
	brightness float64
	fade       []float64
	sent       int
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, publisher Publisher, controller *Controller) *Streamer {
	s := new(Streamer)
	s.publisher = publisher
	s.controller = controller
	s.topic = config.Mqtt.Topics.Stream
	s.interval = time.Duration(float64(time.Second) / config.Matrix.FrameRate)
	s.encoding = config.Matrix.Encoding
	s.brightness = config.Matrix.Brightness
	s.fade = util.FadeInLut(int(config.Matrix.FadeIn / s.interval))
	return s
}

// gain returns the brightness for the next frame, ramping up over the
// fade-in period.
func (s *Streamer) gain() float64 {
	i := s.sent
	if i >= len(s.fade) {
		i = len(s.fade) - 1
	}
	return s.brightness * s.fade[i]
}

// SendFrame renders the frame for runtimeMs and publishes it.
func (s *Streamer) SendFrame(runtimeMs int64) error {
	f, err := s.controller.CalculateFrame(runtimeMs)
	if err != nil {
		return err
	}
	f = f.Dim(s.gain())

	var b []byte
	switch s.encoding {
	case EncodingBinary:
		b, err = f.MarshalBinary()
	default:
		b, err = json.Marshal(f)
	}
	if err != nil {
		return err
	}
	err = s.publisher.Publish(s.topic, b)
	if err != nil {
		return err
	}
	s.sent++
	return nil
}

// Run causes the Streamer to send Frames continuously until ctx is done.
// Failed frames are logged and streaming continues with the next tick.
func (s *Streamer) Run(ctx context.Context) error {
	start := time.Now()
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			err := s.SendFrame(now.Sub(start).Milliseconds())
			if err != nil {
				log.Printf("send frame: %v", err)
			}
		}
	}
}
