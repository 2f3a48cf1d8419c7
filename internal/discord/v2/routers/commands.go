package routers

import (
	"github.com/bwmarrin/discordgo"
)

// Top level slash command names
const (
	CommandCharacter = "character"
	CommandCounter   = "cc"
	CommandGame      = "game"

	// GroupExplore holds the /game explore subcommands
	GroupExplore = "explore"
)

// Commands returns the slash command definitions served by the routers
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		characterCommand(),
		counterCommand(),
		gameCommand(),
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

func subcommandGroup(name, description string, subcommands ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
		Name:        name,
		Description: description,
		Options:     subcommands,
	}
}

func stringOption(name, description string, required bool, choices ...string) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
	for _, choice := range choices {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{Name: choice, Value: choice})
	}
	return opt
}

func intOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        name,
		Description: description,
	}
}

func characterCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandCharacter,
		Description: "Your active character",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("show", "Show your active character",
				boolOption("global", "Use your global character instead of this server's")),
			subcommand("list", "List your characters and switch the active one"),
			subcommand("counters", "Show every custom counter"),
			subcommand("counter", "Show one custom counter",
				stringOption("name", "Counter name", true)),
			subcommand("coins", "Show or change your coinpurse",
				stringOption("change", "e.g. +1gp -2sp, or an amount of gold", false)),
			subcommand("deathsaves", "Show or record death saves",
				stringOption("action", "What to record", false, "success", "fail", "reset")),
		},
	}
}

func counterCommand() *discordgo.ApplicationCommand {
	name := func() *discordgo.ApplicationCommandOption {
		return stringOption("name", "Counter name", true)
	}
	strict := func() *discordgo.ApplicationCommandOption {
		return boolOption("strict", "Fail instead of clipping out of range values")
	}

	return &discordgo.ApplicationCommand{
		Name:        CommandCounter,
		Description: "Manage custom counters",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("create", "Create or replace a counter",
				name(),
				stringOption("min", "Minimum, may use character variables", false),
				stringOption("max", "Maximum, may use character variables", false),
				stringOption("reset", "When it resets", false, "short", "long", "hp", "none"),
				stringOption("display", "How it renders", false, "bubble"),
				stringOption("title", "Display title", false),
				stringOption("desc", "Description", false)),
			subcommand("set", "Set a counter", name(), intOption("value", "New value", true), strict()),
			subcommand("mod", "Change a counter", name(), intOption("amount", "Amount to add", true), strict()),
			subcommand("reset", "Reset a counter", name()),
			subcommand("delete", "Delete a counter", name()),
		},
	}
}

func gameCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandGame,
		Description: "Combat, exploration and encounters in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			subcommand("combat", "Show this channel's initiative order"),
			subcommand("exploration", "Show this channel's exploration"),
			subcommand("encounter", "Roll on your random encounter table",
				intOption("roll", "Use this table row instead of rolling", false),
				boolOption("global", "Use your global table instead of this server's")),
			subcommand("skip", "Skip exploration rounds, rolling encounter checks",
				intOption("rounds", "Rounds to skip", true)),
			subcommandGroup(GroupExplore, "Run an exploration in this channel",
				subcommand("begin", "Start exploring in this channel",
					stringOption("name", "Name of the exploration", false)),
				subcommand("join", "Add your active character to the exploration",
					stringOption("group", "Group to join", false)),
				subcommand("enctimer", "Set the time between encounter checks",
					intOption("time", "Minutes between checks, 0 turns them off", true),
					boolOption("hours", "Read the time as hours")),
				subcommand("chance", "Set the percent chance an encounter check finds something",
					intOption("percent", "1 to 100", true)),
				subcommand("end", "End the exploration in this channel")),
			subcommand("settings", "Show or change server settings",
				stringOption("dm_role", "Role ID to add or remove as a DM role", false),
				boolOption("show_death_saves", "Show death saves on character sheets"),
				boolOption("lookup_dm_required", "Only DMs may look up monsters"),
				boolOption("lookup_pm_dm", "Send DM lookups by private message"),
				boolOption("lookup_pm_result", "Send lookup results by private message")),
		},
	}
}
