package listener

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	pricefomatter "github.com/x-xyz/goauction/base/price_fomatter"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/chain"
)

type DiscordConfig struct {
	ChainId          domain.ChainId
	DiscordBotKey    string
	DiscordChannelId string
	// SiteUrl prefixes asset links, e.g. https://x.xyz
	SiteUrl string
}

// embedSender is the part of *discordgo.Session we post with
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type discordListener struct {
	config    DiscordConfig
	discord   embedSender
	formatter pricefomatter.PriceFormatter
}

func NewDiscordListener(config DiscordConfig) (auction.Listener, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", config.DiscordBotKey))
	if err != nil {
		return nil, err
	}
	return newDiscordListener(config, discord), nil
}

func newDiscordListener(config DiscordConfig, discord embedSender) *discordListener {
	return &discordListener{
		config:    config,
		discord:   discord,
		formatter: pricefomatter.NewPriceFormatter(config.ChainId),
	}
}

func (l *discordListener) Name() string {
	return "discord"
}

func (l *discordListener) Handle(c ctx.Ctx, e *auction.Event, a *auction.Auction) error {
	msg, err := l.embed(c, e)
	if err != nil {
		return err
	}
	if msg == nil {
		return nil
	}

	if _, err := l.discord.ChannelMessageSendEmbed(l.config.DiscordChannelId, msg); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": e.Id,
		}).Error("discord.ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

// embed returns nil for events that are not announced
func (l *discordListener) embed(c ctx.Ctx, e *auction.Event) (*discordgo.MessageEmbed, error) {
	// bids are too chatty for the channel
	if e.Type == auction.EventNewBid {
		return nil, nil
	}

	chainName, err := chain.GetChainDisplayName(l.config.ChainId)
	if err != nil {
		c.WithField("chainId", l.config.ChainId).Warn("unknown chainId")
		return nil, err
	}
	chainUrlPart, err := chain.GetChainUrlPart(l.config.ChainId)
	if err != nil {
		c.WithField("chainId", l.config.ChainId).Warn("unknown chainId")
		return nil, err
	}

	price := l.formatter.String(domain.MustParseWei(e.Value))
	msg := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s/asset/%s/%s/%s", l.config.SiteUrl, chainUrlPart, e.Collection, e.TokenId),
	}

	switch e.Type {
	case auction.EventAuctionCreated:
		msg.Title = "Auction started!"
		msg.Fields = []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(e.Seller)},
			{Name: "Chain", Value: chainName},
			{Name: "Starting price", Value: price},
		}
	case auction.EventAuctionEnded:
		if e.Winner.IsEmpty() {
			msg.Title = "Auction ended without bids"
			msg.Fields = []*discordgo.MessageEmbedField{
				{Name: "Seller", Value: string(e.Seller)},
				{Name: "Chain", Value: chainName},
			}
			break
		}
		msg.Title = "Auction won!"
		msg.Fields = []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(e.Seller)},
			{Name: "Winner", Value: string(e.Winner)},
			{Name: "Chain", Value: chainName},
			{Name: "Price", Value: price},
		}
	default:
		return nil, nil
	}
	return msg, nil
}
