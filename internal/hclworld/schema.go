package hclworld

// The structs below mirror the block layout of a world file and are only
// used as gohcl decoding targets. translate.go replays them through the dsl
// scopes.

type fileRoot struct {
	Games []*gameBlock `hcl:"game,block"`
}

type gameBlock struct {
	InitialRoom string         `hcl:"initial_room"`
	Preface     *string        `hcl:"preface,optional"`
	Metadata    *metadataBlock `hcl:"metadata,block"`
	Player      *playerBlock   `hcl:"player,block"`
	WinIf       *winIfBlock    `hcl:"win_if,block"`
	Rooms       []*roomBlock   `hcl:"room,block"`
}

type metadataBlock struct {
	Author    *string  `hcl:"author,optional"`
	Version   *string  `hcl:"version,optional"`
	Published *string  `hcl:"published,optional"`
	Versions  []string `hcl:"versions,optional"`
	Name      *string  `hcl:"name,optional"`
}

type playerBlock struct {
	Name        *string `hcl:"name,optional"`
	Description *string `hcl:"description,optional"`
}

type winIfBlock struct {
	PlayerOwns   *string `hcl:"player_owns,optional"`
	PlayerEnters *string `hcl:"player_enters,optional"`
}

type roomBlock struct {
	ID          string            `hcl:"id,label"`
	Name        *string           `hcl:"name,optional"`
	Description *string           `hcl:"description,optional"`
	North       *directionBlock   `hcl:"north,block"`
	South       *directionBlock   `hcl:"south,block"`
	East        *directionBlock   `hcl:"east,block"`
	West        *directionBlock   `hcl:"west,block"`
	Items       []*itemBlock      `hcl:"item,block"`
	Characters  []*characterBlock `hcl:"character,block"`
}

type directionBlock struct {
	RoomID   string   `hcl:"room_id,label"`
	State    *string  `hcl:"state,optional"`
	Behavior *string  `hcl:"behavior,optional"`
	Triggers []string `hcl:"triggers,optional"`
}

type itemBlock struct {
	ID          string   `hcl:"id,label"`
	Name        *string  `hcl:"name,optional"`
	Description *string  `hcl:"description,optional"`
	Storable    *bool    `hcl:"storable,optional"`
	Matchers    []string `hcl:"matchers,optional"`
}

type characterBlock struct {
	ID          string         `hcl:"id,label"`
	Name        *string        `hcl:"name,optional"`
	Description *string        `hcl:"description,optional"`
	Matchers    []string       `hcl:"matchers,optional"`
	Dialogue    *dialogueBlock `hcl:"dialogue,block"`
}

type dialogueBlock struct {
	Questions []*questionBlock `hcl:"question,block"`
}

type questionBlock struct {
	ID      string         `hcl:"id,label"`
	First   *bool          `hcl:"first,optional"`
	Text    *string        `hcl:"text,optional"`
	Answers []*answerBlock `hcl:"answer,block"`
	Reward  *itemBlock     `hcl:"reward,block"`
}

type answerBlock struct {
	Text *string `hcl:"text,optional"`
	Next *string `hcl:"next,optional"`
}
