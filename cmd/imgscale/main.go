package main

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/imgscaler"
	"github.com/xaionaro-go/imgscaler/frame"
	"github.com/xaionaro-go/imgscaler/kernel"
	"github.com/xaionaro-go/imgscaler/packet"
	"github.com/xaionaro-go/imgscaler/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/typing"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <raw-input-file> <raw-output-file>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	inputResolutionFlag := pflag.String("input-resolution", "", "resolution of the raw input image, e.g. 640x480")
	outputResolutionFlag := pflag.String("output-resolution", "", "requested output resolution, e.g. 256x333")
	pixelFormatFlag := pflag.String("pixel-format", "gray8", "pixel format of the raw input: gray8, grayf32 or rgba")
	scaleModeFlag := pflag.String("scale-mode", "fit", "scale mode: fit or stretch")
	interpolationFlag := pflag.String("interpolation", "nearest", "interpolation mode: nearest or linear")
	pflag.Parse()
	if len(pflag.Args()) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	var inputResolution, outputResolution types.Resolution
	if err := inputResolution.Parse(*inputResolutionFlag); err != nil {
		l.Fatal(err)
	}
	if err := outputResolution.Parse(*outputResolutionFlag); err != nil {
		l.Fatal(err)
	}
	var scaleMode types.ScaleMode
	if err := scaleMode.Parse(*scaleModeFlag); err != nil {
		l.Fatal(err)
	}
	var interpolationMode types.InterpolationMode
	if err := interpolationMode.Parse(*interpolationFlag); err != nil {
		l.Fatal(err)
	}
	pixelFormat := types.PixelFormat(*pixelFormatFlag)

	inputPath := pflag.Arg(0)
	outputPath := pflag.Arg(1)

	l.Debugf("reading the raw image from '%s'...", inputPath)
	data, err := os.ReadFile(inputPath)
	if err != nil {
		l.Fatal(err)
	}
	buf, err := frame.BuildBuffer(inputResolution, pixelFormat, data)
	if err != nil {
		l.Fatal(err)
	}

	node, err := imgscaler.NewResizeNode(ctx, kernel.ResizeConfig{
		InputTag:          packet.TagImage,
		ScaleMode:         scaleMode,
		InterpolationMode: interpolationMode,
		OutputDimensions:  typing.Opt(outputResolution),
	}, nil)
	if err != nil {
		l.Fatal(err)
	}
	observability.Go(ctx, func(ctx context.Context) {
		node.Serve(ctx)
	})

	node.InputChan() <- packet.BuildDimensionsInput(0, outputResolution)
	node.InputChan() <- packet.BuildImageInput(0, buf)

	select {
	case err := <-node.ErrorChan():
		l.Fatal(err)
	case output := <-node.OutputChan():
		l.Debugf("writing the %s result to '%s'...", output.Image, outputPath)
		if err := os.WriteFile(outputPath, output.Image.Data, 0644); err != nil {
			l.Fatal(err)
		}
	}
}
