package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/ledgif/api"
	"github.com/matt-g-everett/ledgif/player"
	"github.com/matt-g-everett/ledgif/source"
	"github.com/matt-g-everett/ledgif/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Players    []*player.Player
	Controller *stream.Controller
	Streamer   *stream.Streamer
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	a.Config, err = stream.ReadConfig(f)
	if err != nil {
		log.Fatalf("%s: %v", configPath, err)
	}
}

func (a *app) loadPlaylist() {
	animations := make([]stream.Animation, len(a.Config.Playlist.Files))
	for i, path := range a.Config.Playlist.Files {
		anim, err := source.Load(path)
		if err != nil {
			log.Fatal(err)
		}
		p, err := player.New(anim)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		log.Printf("Loaded %s: %d frames %dx%d", path, len(anim.Frames), anim.Width, anim.Height)
		a.Players = append(a.Players, p)
		animations[i] = p
	}

	var err error
	a.Controller, err = stream.NewController(animations,
		a.Config.Matrix.Width, a.Config.Matrix.Height,
		a.Config.Playlist.AnimationTime, a.Config.Playlist.TransitionTime)
	if err != nil {
		log.Fatal(err)
	}
}

// watch restarts each player when its file changes.
func (a *app) watch(ctx context.Context) {
	for i, path := range a.Config.Playlist.Files {
		path := path
		p := a.Players[i]
		go func() {
			err := source.Watch(ctx, path, a.Config.Watch.Debounce, func(anim *source.Animation) {
				err := p.Setup(anim)
				if err != nil {
					log.Printf("%s: %v", path, err)
				}
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("watch %s: %v", path, err)
			}
		}()
	}
}

func (a *app) run(ctx context.Context) {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}
	defer a.Client.Disconnect(250)

	go func() {
		err := api.NewApi(a.Controller, a.Config.Static).Serve(ctx, a.Config.Listen)
		if err != nil {
			log.Printf("api: %v", err)
		}
	}()
	if a.Config.Watch.Enabled {
		a.watch(ctx)
	}

	a.Streamer.Run(ctx)
	log.Println("Stopped")
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Matrix: %+v", a.Config.Matrix)
	log.Printf("Playlist: %+v", a.Config.Playlist)

	a.loadPlaylist()

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer = stream.NewStreamer(a.Config, stream.NewMQTTPublisher(a.Client, a.Config.Mqtt.Qos), a.Controller)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.run(ctx)
}
