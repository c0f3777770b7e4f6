package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/clients/greeterClient"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/logger"
	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "greeter-client",
		Usage: "Client for a cross-layer greeter node",
		Description: `Drives a greeter node the way a deployment script would:

- register the L1 counterpart
- read the greeting
- deliver setGreeting from L1 through the aliased inbox
- forward a greeting to L1 and fetch its outbox proof
- run all of the above as one end-to-end flow`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "node-url",
				Aliases: []string{"url"},
				Value:   "http://localhost:8000",
				Usage:   "Greeter node base URL",
				EnvVars: []string{"GREETER_NODE_URL"},
			},
			&cli.StringFlag{
				Name:    "from",
				Usage:   "L2 address the calls are sent from",
				Value:   common.Address{}.Hex(),
				EnvVars: []string{"GREETER_FROM"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "greet",
				Usage:  "Print the current greeting",
				Action: greetCommand,
			},
			{
				Name:   "counterpart",
				Usage:  "Print the registered L1 target and its alias",
				Action: counterpartCommand,
			},
			{
				Name:  "update-target",
				Usage: "Register the L1 counterpart",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "l1-target",
						Usage:    "L1 greeter address",
						Required: true,
					},
				},
				Action: updateTargetCommand,
			},
			{
				Name:  "deliver-greeting",
				Usage: "Deliver setGreeting from an L1 sender through the inbox",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "l1-sender",
						Usage:    "Unaliased L1 address the message originates from",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "greeting",
						Required: true,
					},
				},
				Action: deliverGreetingCommand,
			},
			{
				Name:  "send-to-l1",
				Usage: "Forward a greeting to the L1 counterpart",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "greeting",
						Required: true,
					},
				},
				Action: sendToL1Command,
			},
			{
				Name:  "proof",
				Usage: "Fetch the outbox proof of a message id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "message-id",
						Usage:    "Message id (decimal or 0x hex)",
						Required: true,
					},
				},
				Action: proofCommand,
			},
			{
				Name:  "flow",
				Usage: "Register the counterpart, set the greeting from L1 and send one back",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "l1-target",
						Usage:    "L1 greeter address",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "greeting",
						Value: "Hello from L1",
					},
				},
				Action: flowCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newClient(c *cli.Context) (*greeterClient.Client, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return greeterClient.NewClient(&greeterClient.ClientConfig{
		NodeURL: c.String("node-url"),
		Logger:  l,
	})
}

func fromAddress(c *cli.Context) (common.Address, error) {
	return util.ParseHexAddress(c.String("from"))
}

func greetCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	greeting, err := client.Greet(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read greeting: %w", err)
	}
	fmt.Println(greeting)
	return nil
}

func counterpartCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	counterpart, err := client.GetCounterpart(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read counterpart: %w", err)
	}
	fmt.Printf("L1 target: %s\nAlias:     %s\nStatus:    %s\n", counterpart.L1Target.Hex(), counterpart.Alias.Hex(), counterpart.Status)
	return nil
}

func updateTargetCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	from, err := fromAddress(c)
	if err != nil {
		return err
	}
	target, err := util.ParseHexAddress(c.String("l1-target"))
	if err != nil {
		return err
	}

	counterpart, err := client.UpdateCounterpart(c.Context, from, target)
	if err != nil {
		return fmt.Errorf("failed to update L1 target: %w", err)
	}
	fmt.Printf("L1 target set to %s (alias %s)\n", counterpart.L1Target.Hex(), counterpart.Alias.Hex())
	return nil
}

func deliverGreetingCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	l1Sender, err := util.ParseHexAddress(c.String("l1-sender"))
	if err != nil {
		return err
	}

	result, err := client.SetGreetingFromL1(c.Context, l1Sender, c.String("greeting"))
	if err != nil {
		return fmt.Errorf("failed to deliver greeting: %w", err)
	}
	if result.Reverted {
		return fmt.Errorf("setGreeting reverted: %s", result.RevertReason)
	}
	fmt.Printf("Greeting delivered as %s\n", result.Caller.Hex())
	return nil
}

func sendToL1Command(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	from, err := fromAddress(c)
	if err != nil {
		return err
	}

	messageId, err := client.SendGreetingToL1(c.Context, from, c.String("greeting"))
	if err != nil {
		return fmt.Errorf("failed to send greeting to L1: %w", err)
	}
	fmt.Printf("L2→L1 message id: %s\n", messageId)
	return nil
}

func proofCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	messageId, ok := math.ParseBig256(c.String("message-id"))
	if !ok {
		return fmt.Errorf("invalid message id %q", c.String("message-id"))
	}

	proof, err := client.GetOutboxProof(c.Context, messageId)
	if err != nil {
		return fmt.Errorf("failed to fetch proof: %w", err)
	}
	fmt.Printf("Send hash: %s\nRoot:      %s\n", proof.SendHash.Hex(), proof.Root.Hex())
	for i, p := range proof.Proof {
		fmt.Printf("  [%d] %s\n", i, p.Hex())
	}
	return nil
}

func flowCommand(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	from, err := fromAddress(c)
	if err != nil {
		return err
	}
	l1Target, err := util.ParseHexAddress(c.String("l1-target"))
	if err != nil {
		return err
	}
	greeting := c.String("greeting")

	if _, err := client.UpdateCounterpart(c.Context, from, l1Target); err != nil {
		return fmt.Errorf("failed to update L1 target: %w", err)
	}
	fmt.Printf("1. Registered L1 target %s\n", l1Target.Hex())

	result, err := client.SetGreetingFromL1(c.Context, l1Target, greeting)
	if err != nil {
		return fmt.Errorf("failed to deliver greeting: %w", err)
	}
	if result.Reverted {
		return fmt.Errorf("setGreeting from L1 reverted: %s", result.RevertReason)
	}
	fmt.Printf("2. Delivered setGreeting from L1 as %s\n", result.Caller.Hex())

	current, err := client.Greet(c.Context)
	if err != nil {
		return fmt.Errorf("failed to read greeting: %w", err)
	}
	fmt.Printf("3. L2 greeting is now %q\n", current)

	messageId, err := client.SendGreetingToL1(c.Context, from, current)
	if err != nil {
		return fmt.Errorf("failed to send greeting to L1: %w", err)
	}
	fmt.Printf("4. Sent greeting back to L1, message id %s\n", messageId)
	return nil
}
