// crocket-demo is a reference host loop: it builds a small fixed set of
// tracks, drives a Session at a fixed tick rate, and on every frame prints
// any connect, disconnect, seek and save event followed by each track's
// current value. It stands in for the render loop
// of a real demo.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kajott/crocket"
	"github.com/spf13/pflag"
)

func main() {
	manifestPath := pflag.String("manifest", "", "YAML manifest of track names (defaults to a small built-in set)")
	saveFile := pflag.String("save", "demo.ctf", "save file to load from and write SAVE events to")
	backupDir := pflag.String("backup-dir", "", "if set, write a timestamped backup alongside each save")
	duration := pflag.Duration("duration", 10*time.Second, "how long to run the demo loop")
	fps := pflag.Float64("fps", 60, "host frame rate")
	pflag.Parse()

	descriptors, slots, err := loadDescriptors(*manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crocket-demo: %v\n", err)
		os.Exit(1)
	}

	session := crocket.Init(descriptors, *saveFile, nil, 60)
	session.SetBackupDir(*backupDir)
	defer session.Done()

	fmt.Printf("crocket-demo: mode=%s save=%s\n", session.Mode(), *saveFile)

	tick := time.Duration(float64(time.Second) / *fps)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var t float32
	deadline := time.Now().Add(*duration)
	for now := range ticker.C {
		if now.After(deadline) {
			break
		}
		events := session.Update(&t)
		report(events, descriptors, slots)
		t += float32(tick.Seconds())
	}
}

func loadDescriptors(manifestPath string) ([]crocket.TrackDescriptor, []*float32, error) {
	var descriptors []crocket.TrackDescriptor
	if manifestPath != "" {
		var err error
		descriptors, err = crocket.LoadManifest(manifestPath)
		if err != nil {
			return nil, nil, err
		}
	} else {
		for _, name := range []string{"cam.fov", "light.intensity", "fade"} {
			descriptors = append(descriptors, crocket.TrackDescriptor{Name: name, Value: new(float32)})
		}
	}
	slots := make([]*float32, len(descriptors))
	for i, d := range descriptors {
		slots[i] = d.Value
	}
	return descriptors, slots, nil
}

func report(events crocket.StateEvents, descriptors []crocket.TrackDescriptor, slots []*float32) {
	if events.Has(crocket.Connect) {
		fmt.Println("-- connected")
	}
	if events.Has(crocket.Disconnect) {
		fmt.Println("-- disconnected")
	}
	if events.Has(crocket.Seek) {
		fmt.Println("-- seek")
	}
	if events.Has(crocket.Save) {
		fmt.Println("-- save")
	}
	for i, d := range descriptors {
		fmt.Printf("  %-20s %g\n", d.Name, *slots[i])
	}
}
