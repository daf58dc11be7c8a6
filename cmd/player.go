package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
)

// playerCommand handles playback state and control
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Inspect and control playback",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Show the current playback state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlayerStatus,
			},
			{
				Name:  "devices",
				Usage: "List available playback devices",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlayerDevices,
			},
			{
				Name:  "play",
				Usage: "Start or resume playback",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "device",
						Usage: "Device ID to play on",
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Context URI to play (album, artist, or playlist)",
					},
					&cli.StringFlag{
						Name:  "track",
						Usage: "Comma-separated track IDs or URIs to play",
					},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Action: r.PlayerPause,
			},
			{
				Name:   "next",
				Usage:  "Skip to the next track",
				Action: r.PlayerNext,
			},
			{
				Name:    "prev",
				Aliases: []string{"previous"},
				Usage:   "Return to the previous track",
				Action:  r.PlayerPrevious,
			},
			{
				Name:  "seek",
				Usage: "Seek within the current track (seconds or a duration like 1m30s)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "position",
					},
				},
				Action: r.PlayerSeek,
			},
			{
				Name:  "volume",
				Usage: "Set playback volume (0-100)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "percent",
					},
				},
				Action: r.PlayerVolume,
			},
			{
				Name:  "shuffle",
				Usage: "Toggle shuffle (on or off)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "state",
					},
				},
				Action: r.PlayerShuffle,
			},
			{
				Name:  "repeat",
				Usage: "Set the repeat mode (off, track, or context)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "mode",
					},
				},
				Action: r.PlayerRepeat,
			},
			{
				Name:  "queue",
				Usage: "Show the play queue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "add",
						Usage: "Track ID or URI to append to the queue",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlayerQueue,
			},
			{
				Name:  "transfer",
				Usage: "Transfer playback to another device",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "device",
						Usage:    "Device ID to transfer playback to",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "play",
						Usage: "Start playing after the transfer",
					},
				},
				Action: r.PlayerTransfer,
			},
		},
	}
}

// PlayerStatus shows the current playback state.
func (r *Runner) PlayerStatus(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	state, err := client.PlaybackState(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch playback state: %w", err)
	}
	if state == nil {
		r.writePlain("Nothing playing.\n")
		return nil
	}

	if useJSON {
		return r.writeJSON(state, pretty)
	}

	if state.Item != nil {
		track := models.TrackFromSpotify(*state.Item)
		marker := "▶"
		if !state.IsPlaying {
			marker = "⏸"
		}
		r.writePlain("%s %s - %s\n", marker, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain("  Album: %s\n", track.Album)
		}
		r.writePlain("  Position: %s / %s\n", shared.FormatDuration(state.ProgressMS), shared.FormatDuration(track.Duration))
	} else {
		r.writePlain("Playing: %s\n", state.CurrentlyPlayingType)
	}

	r.writePlain("  Device: %s (%s)\n", state.Device.Name, state.Device.Type)
	r.writePlain("  Shuffle: %v\n", state.ShuffleState)
	r.writePlain("  Repeat: %s\n", state.RepeatState)

	return nil
}

// PlayerDevices lists the devices available for playback.
func (r *Runner) PlayerDevices(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	devices, err := client.Devices(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch devices: %w", err)
	}

	if useJSON {
		return r.writeJSON(devices, pretty)
	}

	if len(devices) == 0 {
		r.writePlain("No devices available.\n")
		return nil
	}

	r.writePlain("Found %d devices:\n\n", len(devices))
	for i, device := range devices {
		marker := " "
		if device.IsActive {
			marker = "●"
		}
		r.writePlain("%d. %s %s (%s)\n", i+1, marker, device.Name, device.Type)
		r.writePlain("   ID: %s\n", device.ID)
		if device.SupportsVolume {
			r.writePlain("   Volume: %d%%\n", device.VolumePercent)
		}
	}

	return nil
}

// PlayerPlay starts or resumes playback, optionally with a context or
// track list.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	opts := spotify.PlayOptions{
		DeviceID:   cmd.String("device"),
		ContextURI: cmd.String("context"),
		URIs:       splitTrackURIs(cmd.String("track")),
	}

	if err := client.Play(ctx, opts); err != nil {
		return controlErr("play", err)
	}

	return r.writePlain("▶ Playing\n")
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.Pause(ctx); err != nil {
		return controlErr("pause", err)
	}

	return r.writePlain("⏸ Paused\n")
}

// PlayerNext skips to the next track in the queue.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.Next(ctx); err != nil {
		return controlErr("next", err)
	}

	return r.writePlain("⏭ Skipped\n")
}

// PlayerPrevious returns to the previous track.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.Previous(ctx); err != nil {
		return controlErr("previous", err)
	}

	return r.writePlain("⏮ Back\n")
}

// PlayerSeek seeks within the current track.
func (r *Runner) PlayerSeek(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("position")
	if arg == "" {
		return fmt.Errorf("%w: position", shared.ErrMissingArgument)
	}

	position, err := parsePosition(arg)
	if err != nil {
		return err
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.Seek(ctx, position); err != nil {
		return controlErr("seek", err)
	}

	return r.writePlain("✓ Seeked to %s\n", shared.FormatDuration(int(position.Milliseconds())))
}

// PlayerVolume sets the playback volume.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("percent")
	if arg == "" {
		return fmt.Errorf("%w: volume percent", shared.ErrMissingArgument)
	}

	percent, err := strconv.Atoi(arg)
	if err != nil || percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100", shared.ErrInvalidFlag)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.SetVolume(ctx, percent); err != nil {
		return controlErr("volume", err)
	}

	return r.writePlain("✓ Volume set to %d%%\n", percent)
}

// PlayerShuffle toggles shuffle mode.
func (r *Runner) PlayerShuffle(ctx context.Context, cmd *cli.Command) error {
	var on bool
	switch cmd.StringArg("state") {
	case "on", "true":
		on = true
	case "off", "false":
		on = false
	default:
		return fmt.Errorf("%w: shuffle takes on or off", shared.ErrInvalidFlag)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.SetShuffle(ctx, on); err != nil {
		return controlErr("shuffle", err)
	}

	if on {
		return r.writePlain("✓ Shuffle on\n")
	}
	return r.writePlain("✓ Shuffle off\n")
}

// PlayerRepeat sets the repeat mode.
func (r *Runner) PlayerRepeat(ctx context.Context, cmd *cli.Command) error {
	mode := cmd.StringArg("mode")
	switch mode {
	case spotify.RepeatOff, spotify.RepeatTrack, spotify.RepeatContext:
	default:
		return fmt.Errorf("%w: repeat takes off, track, or context", shared.ErrInvalidFlag)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.SetRepeat(ctx, mode); err != nil {
		return controlErr("repeat", err)
	}

	return r.writePlain("✓ Repeat %s\n", mode)
}

// PlayerQueue shows the play queue, or appends a track with --add.
func (r *Runner) PlayerQueue(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if uri := cmd.String("add"); uri != "" {
		if !strings.Contains(uri, ":") {
			uri = "spotify:track:" + uri
		}
		if err := client.AddToQueue(ctx, uri); err != nil {
			return controlErr("queue add", err)
		}
		return r.writePlain("✓ Added to queue\n")
	}

	queue, err := client.Queue(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch queue: %w", err)
	}

	if useJSON {
		return r.writeJSON(queue, pretty)
	}

	if queue.CurrentlyPlaying != nil {
		track := models.TrackFromSpotify(*queue.CurrentlyPlaying)
		r.writePlain("Now playing: %s - %s\n\n", track.Artist, track.Title)
	}

	if len(queue.Queue) == 0 {
		r.writePlain("Queue is empty.\n")
		return nil
	}

	r.writePlain("Up next:\n")
	for i, item := range queue.Queue {
		track := models.TrackFromSpotify(item)
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
	}

	return nil
}

// PlayerTransfer moves playback to another device.
func (r *Runner) PlayerTransfer(ctx context.Context, cmd *cli.Command) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	if err := client.TransferPlayback(ctx, cmd.String("device"), cmd.Bool("play")); err != nil {
		return controlErr("transfer", err)
	}

	return r.writePlain("✓ Playback transferred\n")
}

// controlErr converts a player control failure into a friendlier
// message when no device is active.
func controlErr(op string, err error) error {
	if errors.Is(err, spotify.ErrNotFound) {
		return fmt.Errorf("%s failed: no active device, start playback on a device first", op)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// parsePosition accepts plain seconds ("90") or a duration ("1m30s").
func parsePosition(arg string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(arg); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%w: position cannot be negative", shared.ErrInvalidFlag)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	position, err := time.ParseDuration(arg)
	if err != nil || position < 0 {
		return 0, fmt.Errorf("%w: position must be seconds or a duration like 1m30s", shared.ErrInvalidFlag)
	}
	return position, nil
}
