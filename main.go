package main

import (
	"github.com/mcspirou6/hackaton-mrc-sub001/configuration"
	"github.com/mcspirou6/hackaton-mrc-sub001/routes"
	"github.com/mcspirou6/hackaton-mrc-sub001/scheduler"
)

func Init() {
	configuration.LoadEnv()
	configuration.InitLogger()
	configuration.ConfigDB()
	configuration.InitRedis()
}

func main() {
	//Perform application initialization
	Init()

	//Start the appointment reminder job
	reminders := scheduler.NewReminderJob(configuration.DB, configuration.Logger)
	reminders.Start()
	defer reminders.Stop()

	r := routes.SetupRoutes()

	//Run the engine in default port
	if err := r.Run(); err != nil {
		panic(err)
	}
}
