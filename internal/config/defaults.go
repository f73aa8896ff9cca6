package config

// DefaultManifest returns the built-in artifact and build step table.
// Each call builds a fresh value.
func DefaultManifest() *Manifest {
	return &Manifest{
		ChecksumAlgorithm: "md5",
		Artifacts: map[string]ArtifactSource{
			"DevIL-1.7.8.tar.gz": {
				URL:      "http://softlayer.dl.sourceforge.net/project/openil/DevIL/1.7.8/DevIL-1.7.8.tar.gz",
				Checksum: "7918f215524589435e5ec2e8736d5e1d",
			},
			"SDL-1.2.14.tar.gz": {
				URL:      "http://www.libsdl.org/release/SDL-1.2.14.tar.gz",
				Checksum: "e52086d1b508fa0b76c52ee30b55bec4",
			},
			"SDL_mixer-1.2.11.tar.gz": {
				URL:      "http://www.libsdl.org/projects/SDL_mixer/release/SDL_mixer-1.2.11.tar.gz",
				Checksum: "65ada3d997fe85109191a5fb083f248c",
			},
			"boost_1_39_0.tar.bz2": {
				URL:      "http://softlayer.dl.sourceforge.net/project/boost/boost/1.39.0/boost_1_39_0.tar.bz2",
				Checksum: "a17281fd88c48e0d866e1a12deecbcc0",
			},
			"glew-1.5.0-src.tgz": {
				URL:      "http://downloads.sourceforge.net/project/glew/glew/1.5.0/glew-1.5.0-src.tgz",
				Checksum: "3fececda0151b060c08ffd8a12892741",
			},
			"jpegsrc.v7.tar.gz": {
				URL:      "http://www.ijg.org/files/jpegsrc.v7.tar.gz",
				Checksum: "382ef33b339c299b56baf1296cda9785",
			},
			"libpng-1.4.3.tar.gz": {
				// The upstream FTP mirror is not reachable over HTTP; same tarball on SourceForge.
				URL:      "http://downloads.sourceforge.net/project/libpng/libpng14/older-releases/1.4.3/libpng-1.4.3.tar.gz",
				Checksum: "df3521f61a1b8b69489d297c0ca8c1f8",
			},
		},
		// SDL must be built before SDL_mixer, and the image libraries before DevIL.
		BuildSteps: []StepSpec{
			{Label: "SDL", Command: "/bin/sh ./bootstrap_sdl.sh"},
			{Label: "SDL_mixer", Command: "/bin/sh ./bootstrap_sdlmixer.sh"},
			{Label: "glew", Command: "/bin/sh ./bootstrap_glew.sh"},
			{Label: "jpegsrc", Command: "/bin/sh ./bootstrap_jpeg.sh"},
			{Label: "libpng", Command: "/bin/sh ./bootstrap_libpng.sh"},
			{Label: "DevIL", Command: "/bin/sh ./bootstrap_devil.sh"},
			{Label: "boost", Command: "/bin/sh ./bootstrap_boost.sh"},
		},
	}
}

// Load returns the manifest selected by settings: the resolved file or the built-in default.
// The second return value names the source for diagnostics.
func Load(settings *Settings) (*Manifest, string, error) {
	path, err := settings.ResolveManifestPath()
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		manifest := DefaultManifest()

		return manifest, "built-in", manifest.Validate()
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, "", err
	}

	return manifest, path, nil
}
